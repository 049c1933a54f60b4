// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package replayer

import (
	"errors"
	"testing"

	"github.com/ibriano/Fossilize/internal/recorder"
	"github.com/ibriano/Fossilize/internal/resource"
)

// fakeSink hands back a deterministic "driver handle" derived from the
// hash it was given, and optionally refuses a chosen set of hashes, to
// exercise both the happy path and rejection/cascading paths.
type fakeSink struct {
	reject  map[resource.Hash]bool
	seen    []resource.Kind
	created map[resource.Hash]resource.Handle
}

func newFakeSink() *fakeSink {
	return &fakeSink{reject: map[resource.Hash]bool{}, created: map[resource.Hash]resource.Handle{}}
}

func (f *fakeSink) driverHandle(kind resource.Kind, hash resource.Hash) resource.Handle {
	h := resource.Handle{Kind: resource.ExternalHandle, Value: uint64(kind)<<56 | uint64(hash)&0x00ffffffffffffff}
	f.created[hash] = h
	return h
}

func (f *fakeSink) AcceptApplicationInfo(hash resource.Hash, _ *resource.ApplicationInfoDesc) error {
	f.seen = append(f.seen, resource.KindApplicationInfo)
	if f.reject[hash] {
		return errors.New("rejected")
	}
	return nil
}

func (f *fakeSink) AcceptPhysicalDeviceFeatures(hash resource.Hash, _ *resource.PhysicalDeviceFeaturesDesc) error {
	f.seen = append(f.seen, resource.KindPhysicalDeviceFeatures)
	if f.reject[hash] {
		return errors.New("rejected")
	}
	return nil
}

func (f *fakeSink) AcceptSampler(hash resource.Hash, _ *resource.SamplerDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindSampler)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	return f.driverHandle(resource.KindSampler, hash), nil
}

func (f *fakeSink) AcceptDescriptorSetLayout(hash resource.Hash, desc *resource.DescriptorSetLayoutDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindDescriptorSetLayout)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	for _, b := range desc.Bindings {
		for _, s := range b.ImmutableSamplers {
			if s.Kind != resource.ExternalHandle {
				panic("replayer did not substitute sampler handle before delivery")
			}
		}
	}
	return f.driverHandle(resource.KindDescriptorSetLayout, hash), nil
}

func (f *fakeSink) AcceptPipelineLayout(hash resource.Hash, _ *resource.PipelineLayoutDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindPipelineLayout)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	return f.driverHandle(resource.KindPipelineLayout, hash), nil
}

func (f *fakeSink) AcceptShaderModule(hash resource.Hash, _ *resource.ShaderModuleDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindShaderModule)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	return f.driverHandle(resource.KindShaderModule, hash), nil
}

func (f *fakeSink) AcceptRenderPass(hash resource.Hash, _ *resource.RenderPassDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindRenderPass)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	return f.driverHandle(resource.KindRenderPass, hash), nil
}

func (f *fakeSink) AcceptComputePipeline(hash resource.Hash, _ *resource.ComputePipelineDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindComputePipeline)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	return f.driverHandle(resource.KindComputePipeline, hash), nil
}

func (f *fakeSink) AcceptGraphicsPipeline(hash resource.Hash, _ *resource.GraphicsPipelineDesc) (resource.Handle, error) {
	f.seen = append(f.seen, resource.KindGraphicsPipeline)
	if f.reject[hash] {
		return resource.Handle{}, errors.New("rejected")
	}
	return f.driverHandle(resource.KindGraphicsPipeline, hash), nil
}

func TestReplayDeliversInDependencyOrderAndSubstitutesHandles(t *testing.T) {
	rec := recorder.New(nil)

	samplerHash, err := rec.RecordSampler(resource.Handle{Kind: resource.ExternalHandle, Value: 1}, resource.SamplerDesc{MinLod: 1, MaxLod: 2})
	if err != nil {
		t.Fatalf("recording sampler: %v", err)
	}
	_, err = rec.RecordDescriptorSetLayout(resource.Handle{Kind: resource.ExternalHandle, Value: 2}, resource.DescriptorSetLayoutDesc{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{{Kind: resource.ExternalHandle, Value: 1}}},
		},
	})
	if err != nil {
		t.Fatalf("recording descriptor set layout: %v", err)
	}

	data, err := rec.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	sink := newFakeSink()
	stats, err := Replay(data, sink, nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if stats.Delivered != 2 || stats.Rejected != 0 || stats.Mismatch != 0 || stats.Cascaded != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, ok := sink.created[samplerHash]; !ok {
		t.Fatalf("sampler was never delivered to the sink")
	}
	if sink.seen[0] != resource.KindSampler || sink.seen[1] != resource.KindDescriptorSetLayout {
		t.Fatalf("delivered out of dependency order: %v", sink.seen)
	}
}

func TestReplaySinkRejectionCascades(t *testing.T) {
	rec := recorder.New(nil)
	samplerHash, err := rec.RecordSampler(resource.Handle{Kind: resource.ExternalHandle, Value: 1}, resource.SamplerDesc{MinLod: 5})
	if err != nil {
		t.Fatalf("recording sampler: %v", err)
	}
	_, err = rec.RecordDescriptorSetLayout(resource.Handle{Kind: resource.ExternalHandle, Value: 2}, resource.DescriptorSetLayoutDesc{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{{Kind: resource.ExternalHandle, Value: 1}}},
		},
	})
	if err != nil {
		t.Fatalf("recording descriptor set layout: %v", err)
	}
	_, err = rec.RecordShaderModule(resource.Handle{Kind: resource.ExternalHandle, Value: 3}, resource.ShaderModuleDesc{Code: []byte{9, 9}})
	if err != nil {
		t.Fatalf("recording shader module: %v", err)
	}

	data, err := rec.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	sink := newFakeSink()
	sink.reject[samplerHash] = true
	stats, err := Replay(data, sink, nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if stats.Rejected != 1 {
		t.Fatalf("expected 1 rejection, got %d", stats.Rejected)
	}
	if stats.Cascaded != 1 {
		t.Fatalf("expected the descriptor set layout to cascade-fail, got stats %+v", stats)
	}
	if stats.Delivered != 1 {
		t.Fatalf("expected the independent shader module to still be delivered, got stats %+v", stats)
	}
}

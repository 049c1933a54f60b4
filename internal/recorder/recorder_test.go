// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package recorder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ibriano/Fossilize/internal/hasher"
	"github.com/ibriano/Fossilize/internal/resource"
)

func TestSamplerDedupByFieldChange(t *testing.T) {
	rec := New(nil)
	h1, err := rec.RecordSampler(resource.Handle{}, resource.SamplerDesc{MinLod: 10.0, MaxLod: 10.0})
	if err != nil {
		t.Fatalf("recording base sampler: %v", err)
	}
	h2, err := rec.RecordSampler(resource.Handle{}, resource.SamplerDesc{MinLod: 11.0, MaxLod: 10.0})
	if err != nil {
		t.Fatalf("recording changed sampler: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes, got %d == %d", h1, h2)
	}
	if got := rec.Tables().Count(resource.KindSampler); got != 2 {
		t.Fatalf("expected 2 interned samplers, got %d", got)
	}

	h1Again, err := rec.RecordSampler(resource.Handle{}, resource.SamplerDesc{MinLod: 10.0, MaxLod: 10.0})
	if err != nil {
		t.Fatalf("re-recording base sampler: %v", err)
	}
	if h1Again != h1 {
		t.Fatalf("re-recording identical descriptor changed the hash")
	}
	if got := rec.Tables().Count(resource.KindSampler); got != 2 {
		t.Fatalf("expected intern table size unchanged after re-recording, got %d", got)
	}
}

func TestSamplerExtensionChainRejectionLeavesTableUnchanged(t *testing.T) {
	rec := New(nil)
	desc := resource.SamplerDesc{
		Extensions: []resource.Extension{
			{Type: resource.ExtensionSamplerYcbcrConversion, Data: []byte{1, 2, 3}},
			{Type: resource.ExtensionSamplerReductionMode, Data: []byte{4}},
		},
	}
	_, err := rec.RecordSampler(resource.Handle{}, desc)
	if !errors.Is(err, hasher.ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
	if got := rec.Tables().Count(resource.KindSampler); got != 0 {
		t.Fatalf("expected intern table unchanged after rejection, got %d entries", got)
	}
}

func TestRecordDescriptorSetLayoutUnknownReferenceRejected(t *testing.T) {
	rec := New(nil)
	desc := resource.DescriptorSetLayoutDesc{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{DescriptorCount: 1, ImmutableSamplers: []resource.Handle{{Kind: resource.ExternalHandle, Value: 99}}},
		},
	}
	_, err := rec.RecordDescriptorSetLayout(resource.Handle{}, desc)
	if !errors.Is(err, hasher.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	rec := New(nil)

	samplerHandle := resource.Handle{Kind: resource.ExternalHandle, Value: 1}
	samplerHash, err := rec.RecordSampler(samplerHandle, resource.SamplerDesc{MinLod: 1, MaxLod: 2})
	if err != nil {
		t.Fatalf("recording sampler: %v", err)
	}

	dslHandle := resource.Handle{Kind: resource.ExternalHandle, Value: 2}
	_, err = rec.RecordDescriptorSetLayout(dslHandle, resource.DescriptorSetLayoutDesc{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{samplerHandle}},
		},
	})
	if err != nil {
		t.Fatalf("recording descriptor set layout: %v", err)
	}

	if _, err := rec.RecordShaderModule(resource.Handle{Kind: resource.ExternalHandle, Value: 3}, resource.ShaderModuleDesc{Code: []byte{1, 2, 3, 4}}); err != nil {
		t.Fatalf("recording shader module: %v", err)
	}

	if _, err := rec.RecordApplicationInfo(resource.ApplicationInfoDesc{ApplicationName: "demo", APIVersion: 42}); err != nil {
		t.Fatalf("recording application info: %v", err)
	}

	data, err := rec.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	data2, err := rec.Serialize()
	if err != nil {
		t.Fatalf("second serialize: %v", err)
	}
	if !reflect.DeepEqual(data, data2) {
		t.Fatalf("serialize is not deterministic across calls")
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !triplesEqual(rec.Tables(), parsed) {
		t.Fatalf("round trip did not yield an equivalent recorder state")
	}

	if _, ok := parsed.samplers[samplerHash]; !ok {
		t.Fatalf("parsed state missing sampler hash %d", samplerHash)
	}
}

// triplesEqual compares two Tables by their (kind, hash, canonical
// descriptor) triples (§8 "Equivalent = same set of ... triples").
func triplesEqual(a, b *Tables) bool {
	return reflect.DeepEqual(a.samplers, b.samplers) &&
		reflect.DeepEqual(a.descriptorSetLayouts, b.descriptorSetLayouts) &&
		reflect.DeepEqual(a.pipelineLayouts, b.pipelineLayouts) &&
		reflect.DeepEqual(a.shaderModules, b.shaderModules) &&
		reflect.DeepEqual(a.renderPasses, b.renderPasses) &&
		reflect.DeepEqual(a.computePipelines, b.computePipelines) &&
		reflect.DeepEqual(a.graphicsPipelines, b.graphicsPipelines) &&
		reflect.DeepEqual(a.applicationInfo, b.applicationInfo) &&
		a.applicationInfoHash == b.applicationInfoHash &&
		reflect.DeepEqual(a.deviceFeatures, b.deviceFeatures) &&
		a.deviceFeaturesHash == b.deviceFeaturesHash
}

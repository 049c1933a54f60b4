// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"errors"
	"testing"

	"github.com/ibriano/Fossilize/internal/resource"
)

// mapDeps is a plain-map Dependencies implementation for tests.
type mapDeps map[resource.Kind]map[resource.Handle]resource.Hash

func (m mapDeps) Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool) {
	v, ok := m[kind][h]
	return v, ok
}

func TestSamplerDedupByFieldChange(t *testing.T) {
	base := resource.SamplerDesc{MinLod: 10.0, MaxLod: 10.0}
	changed := base
	changed.MinLod = 11.0

	h1, err := Sampler(&base, nil)
	if err != nil {
		t.Fatalf("hashing base sampler: %v", err)
	}
	h2, err := Sampler(&changed, nil)
	if err != nil {
		t.Fatalf("hashing changed sampler: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for different minLod, got %d == %d", h1, h2)
	}

	h1Again, err := Sampler(&base, nil)
	if err != nil {
		t.Fatalf("re-hashing base sampler: %v", err)
	}
	if h1Again != h1 {
		t.Fatalf("re-hashing identical descriptor changed the hash: %d != %d", h1Again, h1)
	}
}

func TestSamplerExtensionChainRejection(t *testing.T) {
	desc := resource.SamplerDesc{
		Extensions: []resource.Extension{
			{Type: resource.ExtensionSamplerYcbcrConversion, Data: []byte{1, 2, 3}},
			{Type: resource.ExtensionSamplerReductionMode, Data: []byte{4}},
		},
	}
	_, err := Sampler(&desc, nil)
	if !errors.Is(err, ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
}

func TestSamplerUnrecognizedExtensionRejected(t *testing.T) {
	desc := resource.SamplerDesc{
		Extensions: []resource.Extension{
			{Type: resource.ExtensionType(9999), Data: []byte{1}},
		},
	}
	_, err := Sampler(&desc, nil)
	if !errors.Is(err, ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
}

func TestSamplerSingleRecognizedExtensionAccepted(t *testing.T) {
	desc := resource.SamplerDesc{
		Extensions: []resource.Extension{
			{Type: resource.ExtensionSamplerYcbcrConversion, Data: []byte{1, 2, 3}},
		},
	}
	if _, err := Sampler(&desc, nil); err != nil {
		t.Fatalf("expected single recognized extension to be accepted, got %v", err)
	}
}

func TestDescriptorSetLayoutUnknownReference(t *testing.T) {
	desc := resource.DescriptorSetLayoutDesc{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{
				Binding:           0,
				DescriptorCount:   1,
				ImmutableSamplers: []resource.Handle{{Kind: resource.ExternalHandle, Value: 42}},
			},
		},
	}
	_, err := DescriptorSetLayout(&desc, mapDeps{})
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
}

func TestDescriptorSetLayoutFoldsResolvedSamplerHash(t *testing.T) {
	samplerHandle := resource.Handle{Kind: resource.ExternalHandle, Value: 1}
	deps := mapDeps{
		resource.KindSampler: {samplerHandle: 0xAAAA},
	}
	desc := resource.DescriptorSetLayoutDesc{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{samplerHandle}},
		},
	}
	h1, err := DescriptorSetLayout(&desc, deps)
	if err != nil {
		t.Fatalf("hashing descriptor set layout: %v", err)
	}

	deps2 := mapDeps{resource.KindSampler: {samplerHandle: 0xBBBB}}
	h2, err := DescriptorSetLayout(&desc, deps2)
	if err != nil {
		t.Fatalf("hashing descriptor set layout with different dep hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different dependency content hash to change the layout hash")
	}
}

func TestRenderPassIgnoresUncountedDependencies(t *testing.T) {
	full := resource.RenderPassDesc{
		DependencyCount: 0,
		Dependencies: []resource.SubpassDependency{
			{SrcSubpass: 1, DstSubpass: 2},
		},
	}
	empty := resource.RenderPassDesc{DependencyCount: 0}

	h1, err := RenderPass(&full, nil)
	if err != nil {
		t.Fatalf("hashing render pass with uncounted tail: %v", err)
	}
	h2, err := RenderPass(&empty, nil)
	if err != nil {
		t.Fatalf("hashing empty render pass: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected uncounted dependency tail to be ignored, got %d != %d", h1, h2)
	}
}

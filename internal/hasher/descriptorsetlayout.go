// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// DescriptorSetLayout computes the content hash of a descriptor set
// layout (§3.1, §4.1). Each binding's immutable samplers are resolved
// to their sampler content hashes via deps (§4.1 "Dependency-folding";
// §3 "may reference Samplers as immutable samplers").
func DescriptorSetLayout(d *resource.DescriptorSetLayoutDesc, deps Dependencies) (resource.Hash, error) {
	w := newCanonWriter(descriptorSetLayoutDomain)
	w.WriteUint32(d.Flags)
	w.WriteUint64(uint64(len(d.Bindings)))
	for _, b := range d.Bindings {
		w.WriteUint32(b.Binding)
		w.WriteUint8(uint8(b.DescriptorType))
		w.WriteUint32(b.DescriptorCount)
		w.WriteUint32(b.StageFlags)
		w.WriteUint64(uint64(len(b.ImmutableSamplers)))
		for _, s := range b.ImmutableSamplers {
			w.ResolveHandle(deps, resource.KindSampler, s)
		}
	}
	return w.Sum()
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// PipelineLayout computes the content hash of a pipeline layout
// (§3.1, §4.1). Each referenced set layout is resolved to its content
// hash via deps.
func PipelineLayout(d *resource.PipelineLayoutDesc, deps Dependencies) (resource.Hash, error) {
	w := newCanonWriter(pipelineLayoutDomain)
	w.WriteUint64(uint64(len(d.SetLayouts)))
	for _, h := range d.SetLayouts {
		w.ResolveHandle(deps, resource.KindDescriptorSetLayout, h)
	}
	w.WriteUint64(uint64(len(d.PushConstantRanges)))
	for _, r := range d.PushConstantRanges {
		w.WriteUint32(r.StageFlags)
		w.WriteUint32(r.Offset)
		w.WriteUint32(r.Size)
	}
	return w.Sum()
}

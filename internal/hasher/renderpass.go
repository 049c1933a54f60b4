// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// RenderPass computes the content hash of a render pass (§3.1, §4.1).
// Exactly DependencyCount entries of Dependencies are folded; any
// populated-but-uncounted tail is ignored, matching the §9 Open
// Question's "follows the count field" resolution.
func RenderPass(d *resource.RenderPassDesc, _ Dependencies) (resource.Hash, error) {
	w := newCanonWriter(renderPassDomain)

	w.WriteUint64(uint64(len(d.Attachments)))
	for _, a := range d.Attachments {
		w.WriteUint32(a.Format)
		w.WriteUint32(a.Samples)
		w.WriteUint8(uint8(a.LoadOp))
		w.WriteUint8(uint8(a.StoreOp))
		w.WriteUint8(uint8(a.StencilLoadOp))
		w.WriteUint8(uint8(a.StencilStoreOp))
		w.WriteUint8(uint8(a.InitialLayout))
		w.WriteUint8(uint8(a.FinalLayout))
	}

	w.WriteUint64(uint64(len(d.Subpasses)))
	for _, s := range d.Subpasses {
		w.WriteUint8(uint8(s.PipelineBindPoint))
		writeUint32Slice(w, s.InputAttachments)
		writeUint32Slice(w, s.ColorAttachments)
		writeUint32Slice(w, s.ResolveAttachments)
		w.WriteBool(s.DepthStencilAttached)
		if s.DepthStencilAttached {
			w.WriteUint32(s.DepthStencilIndex)
		}
		writeUint32Slice(w, s.PreserveAttachments)
	}

	w.WriteUint32(d.DependencyCount)
	count := int(d.DependencyCount)
	if count > len(d.Dependencies) {
		count = len(d.Dependencies)
	}
	for i := 0; i < count; i++ {
		dep := d.Dependencies[i]
		w.WriteUint32(dep.SrcSubpass)
		w.WriteUint32(dep.DstSubpass)
		w.WriteUint32(dep.SrcStageMask)
		w.WriteUint32(dep.DstStageMask)
		w.WriteUint32(dep.SrcAccessMask)
		w.WriteUint32(dep.DstAccessMask)
		w.WriteUint32(dep.DependencyFlags)
	}

	return w.Sum()
}

func writeUint32Slice(w *canonWriter, s []uint32) {
	w.WriteUint64(uint64(len(s)))
	for _, v := range s {
		w.WriteUint32(v)
	}
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// ComputePipeline computes the content hash of a compute pipeline
// (§3.1, §4.1), folding its layout, shader stage, and optional base
// pipeline by their resolved content hashes.
func ComputePipeline(d *resource.ComputePipelineDesc, deps Dependencies) (resource.Hash, error) {
	w := newCanonWriter(computePipelineDomain)
	w.ResolveHandle(deps, resource.KindPipelineLayout, d.Layout)
	writeShaderStage(w, deps, d.Stage)
	w.ResolveHandle(deps, resource.KindComputePipeline, d.BaseHandle)
	return w.Sum()
}

// GraphicsPipeline computes the content hash of a graphics pipeline
// (§3.1, §4.1), folding its layout, render pass, shader stages, vertex
// input state, and optional base pipeline by their resolved content
// hashes.
func GraphicsPipeline(d *resource.GraphicsPipelineDesc, deps Dependencies) (resource.Hash, error) {
	w := newCanonWriter(graphicsPipelineDomain)
	w.ResolveHandle(deps, resource.KindPipelineLayout, d.Layout)
	w.ResolveHandle(deps, resource.KindRenderPass, d.RenderPass)

	w.WriteUint64(uint64(len(d.Stages)))
	for _, stage := range d.Stages {
		writeShaderStage(w, deps, stage)
	}

	w.WriteUint64(uint64(len(d.VertexInputBindings)))
	for _, b := range d.VertexInputBindings {
		w.WriteUint32(b.Binding)
		w.WriteUint32(b.Stride)
		w.WriteUint8(uint8(b.InputRate))
	}

	w.WriteUint64(uint64(len(d.VertexInputAttributes)))
	for _, a := range d.VertexInputAttributes {
		w.WriteUint32(a.Location)
		w.WriteUint32(a.Binding)
		w.WriteUint32(a.Format)
		w.WriteUint32(a.Offset)
	}

	w.WriteUint32(d.Subpass)
	w.ResolveHandle(deps, resource.KindGraphicsPipeline, d.BaseHandle)

	return w.Sum()
}

func writeShaderStage(w *canonWriter, deps Dependencies, s resource.ShaderStage) {
	w.WriteUint32(s.Stage)
	w.ResolveHandle(deps, resource.KindShaderModule, s.Module)
	w.WriteBytes([]byte(s.EntryPoint))
	w.WriteBytes(s.SpecializationData)
}

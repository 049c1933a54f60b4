// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package recorder implements the accept-hash-intern pipeline of §4.2:
// one record_X operation per resource kind plus the two metadata
// singletons, backed by a per-kind intern table that deduplicates by
// content hash and a deterministic serializer for the §6 wire format.
//
// A Recorder is not safe for concurrent use from multiple goroutines
// (§5 "Single-threaded cooperative ... these types are not internally
// synchronized"); callers that need concurrent producers run one
// Recorder per goroutine/process and merge downstream, at the archive
// layer (§4.6).
package recorder

import "github.com/ibriano/Fossilize/internal/resource"

// Tables is the Recorder's intern state: a hash-keyed map of
// canonical descriptors per kind (§3 Entity: Intern table), plus the
// external-handle bindings needed to resolve a later descriptor's
// dependency fields back to content hashes (§4.1 Dependencies).
//
// Tables implements [hasher.Dependencies] directly so the hasher
// package never needs to know about Recorder.
type Tables struct {
	samplers             map[resource.Hash]*resource.SamplerDesc
	descriptorSetLayouts map[resource.Hash]*resource.DescriptorSetLayoutDesc
	pipelineLayouts      map[resource.Hash]*resource.PipelineLayoutDesc
	shaderModules        map[resource.Hash]*resource.ShaderModuleDesc
	renderPasses         map[resource.Hash]*resource.RenderPassDesc
	computePipelines     map[resource.Hash]*resource.ComputePipelineDesc
	graphicsPipelines    map[resource.Hash]*resource.GraphicsPipelineDesc

	applicationInfo      *resource.ApplicationInfoDesc
	applicationInfoHash  resource.Hash
	deviceFeatures       *resource.PhysicalDeviceFeaturesDesc
	deviceFeaturesHash   resource.Hash

	// external maps a kind's caller-assigned handles (as seen in a
	// record_X call) to the content hash that call produced, so a
	// later descriptor referencing the same object by its original
	// handle can be resolved (§9 "Handles-as-hashes").
	external map[resource.Kind]map[uint64]resource.Hash
}

// NewTables returns an empty intern state.
func NewTables() *Tables {
	return &Tables{
		samplers:             make(map[resource.Hash]*resource.SamplerDesc),
		descriptorSetLayouts: make(map[resource.Hash]*resource.DescriptorSetLayoutDesc),
		pipelineLayouts:      make(map[resource.Hash]*resource.PipelineLayoutDesc),
		shaderModules:        make(map[resource.Hash]*resource.ShaderModuleDesc),
		renderPasses:         make(map[resource.Hash]*resource.RenderPassDesc),
		computePipelines:     make(map[resource.Hash]*resource.ComputePipelineDesc),
		graphicsPipelines:    make(map[resource.Hash]*resource.GraphicsPipelineDesc),
		external:             make(map[resource.Kind]map[uint64]resource.Hash),
	}
}

// Resolve implements [hasher.Dependencies]. A zero handle is handled
// by the hasher's canonWriter before this is ever called, so it is
// not special-cased here.
func (t *Tables) Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool) {
	if h.Kind == resource.ContentHashHandle {
		hash := h.AsContentHash()
		if t.has(kind, hash) {
			return hash, true
		}
		return 0, false
	}
	hash, ok := t.external[kind][h.Value]
	return hash, ok
}

// bindExternal records that handle (as the caller of record_X used
// it) now resolves to hash within kind. Multiple external handles may
// bind to the same hash; that is expected when an application creates
// equivalent objects more than once.
func (t *Tables) bindExternal(kind resource.Kind, handle resource.Handle, hash resource.Hash) {
	if handle.IsZero() {
		return
	}
	m := t.external[kind]
	if m == nil {
		m = make(map[uint64]resource.Hash)
		t.external[kind] = m
	}
	m[handle.Value] = hash
}

// canonicalHandle resolves h to its dependency's content hash (as a
// [resource.ContentHash] handle), mirroring exactly what the hasher
// folded into the parent's hash. Called only after the corresponding
// hasher call has already succeeded, so the resolve here cannot fail.
func (t *Tables) canonicalHandle(kind resource.Kind, h resource.Handle) resource.Handle {
	if h.IsZero() {
		return resource.Handle{}
	}
	hash, ok := t.Resolve(kind, h)
	if !ok {
		// Unreachable: the caller already validated h via the hasher,
		// which uses the same Resolve.
		return h
	}
	return resource.ContentHash(hash)
}

func (t *Tables) has(kind resource.Kind, hash resource.Hash) bool {
	switch kind {
	case resource.KindSampler:
		_, ok := t.samplers[hash]
		return ok
	case resource.KindDescriptorSetLayout:
		_, ok := t.descriptorSetLayouts[hash]
		return ok
	case resource.KindPipelineLayout:
		_, ok := t.pipelineLayouts[hash]
		return ok
	case resource.KindShaderModule:
		_, ok := t.shaderModules[hash]
		return ok
	case resource.KindRenderPass:
		_, ok := t.renderPasses[hash]
		return ok
	case resource.KindComputePipeline:
		_, ok := t.computePipelines[hash]
		return ok
	case resource.KindGraphicsPipeline:
		_, ok := t.graphicsPipelines[hash]
		return ok
	case resource.KindApplicationInfo:
		return t.applicationInfo != nil && t.applicationInfoHash == hash
	case resource.KindPhysicalDeviceFeatures:
		return t.deviceFeatures != nil && t.deviceFeaturesHash == hash
	default:
		return false
	}
}

// Samplers exposes the sampler intern table to the replayer, which
// needs to iterate every interned descriptor by hash.
func (t *Tables) Samplers() map[resource.Hash]*resource.SamplerDesc { return t.samplers }

// DescriptorSetLayouts exposes the descriptor-set-layout intern table.
func (t *Tables) DescriptorSetLayouts() map[resource.Hash]*resource.DescriptorSetLayoutDesc {
	return t.descriptorSetLayouts
}

// PipelineLayouts exposes the pipeline-layout intern table.
func (t *Tables) PipelineLayouts() map[resource.Hash]*resource.PipelineLayoutDesc {
	return t.pipelineLayouts
}

// ShaderModules exposes the shader-module intern table.
func (t *Tables) ShaderModules() map[resource.Hash]*resource.ShaderModuleDesc { return t.shaderModules }

// RenderPasses exposes the render-pass intern table.
func (t *Tables) RenderPasses() map[resource.Hash]*resource.RenderPassDesc { return t.renderPasses }

// ComputePipelines exposes the compute-pipeline intern table.
func (t *Tables) ComputePipelines() map[resource.Hash]*resource.ComputePipelineDesc {
	return t.computePipelines
}

// GraphicsPipelines exposes the graphics-pipeline intern table.
func (t *Tables) GraphicsPipelines() map[resource.Hash]*resource.GraphicsPipelineDesc {
	return t.graphicsPipelines
}

// ApplicationInfo returns the application-info singleton, if recorded.
func (t *Tables) ApplicationInfo() (*resource.ApplicationInfoDesc, resource.Hash, bool) {
	return t.applicationInfo, t.applicationInfoHash, t.applicationInfo != nil
}

// PhysicalDeviceFeatures returns the device-features singleton, if recorded.
func (t *Tables) PhysicalDeviceFeatures() (*resource.PhysicalDeviceFeaturesDesc, resource.Hash, bool) {
	return t.deviceFeatures, t.deviceFeaturesHash, t.deviceFeatures != nil
}

// Count returns the number of interned objects for kind (singletons
// count as 0 or 1), used by tests asserting the dedup invariant (§8
// "intern table size is unchanged after the second").
func (t *Tables) Count(kind resource.Kind) int {
	switch kind {
	case resource.KindSampler:
		return len(t.samplers)
	case resource.KindDescriptorSetLayout:
		return len(t.descriptorSetLayouts)
	case resource.KindPipelineLayout:
		return len(t.pipelineLayouts)
	case resource.KindShaderModule:
		return len(t.shaderModules)
	case resource.KindRenderPass:
		return len(t.renderPasses)
	case resource.KindComputePipeline:
		return len(t.computePipelines)
	case resource.KindGraphicsPipeline:
		return len(t.graphicsPipelines)
	case resource.KindApplicationInfo:
		if t.applicationInfo != nil {
			return 1
		}
		return 0
	case resource.KindPhysicalDeviceFeatures:
		if t.deviceFeatures != nil {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package recorder

import (
	"fmt"
	"log/slog"

	"github.com/ibriano/Fossilize/internal/hasher"
	"github.com/ibriano/Fossilize/internal/resource"
)

// Recorder accepts pipeline-creation descriptors from an application,
// deduplicates them by content hash, and can serialize the whole
// interned state to the §6 wire format. One Recorder instance
// corresponds to one capturing process (§5 "giving each participant
// its own instance").
type Recorder struct {
	tables *Tables
	logger *slog.Logger
}

// New returns a Recorder with an empty intern state. A nil logger
// defaults to [slog.Default] (§1.1 ambient stack: "library packages
// accept an optional logger").
func New(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{tables: NewTables(), logger: logger}
}

// Tables exposes the recorder's intern state read-only access point
// for the replayer's round-trip tests and the serializer.
func (r *Recorder) Tables() *Tables { return r.tables }

// RecordSampler implements record_sampler (§4.2, §8 scenarios 1-2).
// desc is never mutated; the interned copy is the caller's value.
func (r *Recorder) RecordSampler(handle resource.Handle, desc resource.SamplerDesc) (resource.Hash, error) {
	hash, err := hasher.Sampler(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting sampler", slog.Any("error", err))
		return 0, fmt.Errorf("recording sampler: %w", err)
	}
	if _, exists := r.tables.samplers[hash]; !exists {
		r.tables.samplers[hash] = &desc
	}
	r.tables.bindExternal(resource.KindSampler, handle, hash)
	return hash, nil
}

// RecordDescriptorSetLayout implements record_descriptor_set_layout
// (§4.2). Immutable sampler handles are canonicalized to content
// hashes before interning, mirroring what the hasher already folded.
func (r *Recorder) RecordDescriptorSetLayout(handle resource.Handle, desc resource.DescriptorSetLayoutDesc) (resource.Hash, error) {
	hash, err := hasher.DescriptorSetLayout(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting descriptor set layout", slog.Any("error", err))
		return 0, fmt.Errorf("recording descriptor set layout: %w", err)
	}
	if _, exists := r.tables.descriptorSetLayouts[hash]; !exists {
		canon := desc
		canon.Bindings = make([]resource.DescriptorSetLayoutBinding, len(desc.Bindings))
		for i, b := range desc.Bindings {
			canonB := b
			canonB.ImmutableSamplers = make([]resource.Handle, len(b.ImmutableSamplers))
			for j, s := range b.ImmutableSamplers {
				canonB.ImmutableSamplers[j] = r.tables.canonicalHandle(resource.KindSampler, s)
			}
			canon.Bindings[i] = canonB
		}
		r.tables.descriptorSetLayouts[hash] = &canon
	}
	r.tables.bindExternal(resource.KindDescriptorSetLayout, handle, hash)
	return hash, nil
}

// RecordPipelineLayout implements record_pipeline_layout (§4.2).
func (r *Recorder) RecordPipelineLayout(handle resource.Handle, desc resource.PipelineLayoutDesc) (resource.Hash, error) {
	hash, err := hasher.PipelineLayout(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting pipeline layout", slog.Any("error", err))
		return 0, fmt.Errorf("recording pipeline layout: %w", err)
	}
	if _, exists := r.tables.pipelineLayouts[hash]; !exists {
		canon := desc
		canon.SetLayouts = make([]resource.Handle, len(desc.SetLayouts))
		for i, h := range desc.SetLayouts {
			canon.SetLayouts[i] = r.tables.canonicalHandle(resource.KindDescriptorSetLayout, h)
		}
		r.tables.pipelineLayouts[hash] = &canon
	}
	r.tables.bindExternal(resource.KindPipelineLayout, handle, hash)
	return hash, nil
}

// RecordShaderModule implements record_shader_module (§4.2). Shader
// modules have no dependencies, so there is nothing to canonicalize.
func (r *Recorder) RecordShaderModule(handle resource.Handle, desc resource.ShaderModuleDesc) (resource.Hash, error) {
	hash, err := hasher.ShaderModule(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting shader module", slog.Any("error", err))
		return 0, fmt.Errorf("recording shader module: %w", err)
	}
	if _, exists := r.tables.shaderModules[hash]; !exists {
		r.tables.shaderModules[hash] = &desc
	}
	r.tables.bindExternal(resource.KindShaderModule, handle, hash)
	return hash, nil
}

// RecordRenderPass implements record_render_pass (§4.2, §9 Open
// Question). No dependency handles to canonicalize.
func (r *Recorder) RecordRenderPass(handle resource.Handle, desc resource.RenderPassDesc) (resource.Hash, error) {
	hash, err := hasher.RenderPass(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting render pass", slog.Any("error", err))
		return 0, fmt.Errorf("recording render pass: %w", err)
	}
	if _, exists := r.tables.renderPasses[hash]; !exists {
		r.tables.renderPasses[hash] = &desc
	}
	r.tables.bindExternal(resource.KindRenderPass, handle, hash)
	return hash, nil
}

// RecordComputePipeline implements record_compute_pipeline (§4.2).
func (r *Recorder) RecordComputePipeline(handle resource.Handle, desc resource.ComputePipelineDesc) (resource.Hash, error) {
	hash, err := hasher.ComputePipeline(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting compute pipeline", slog.Any("error", err))
		return 0, fmt.Errorf("recording compute pipeline: %w", err)
	}
	if _, exists := r.tables.computePipelines[hash]; !exists {
		canon := desc
		canon.Layout = r.tables.canonicalHandle(resource.KindPipelineLayout, desc.Layout)
		canon.Stage.Module = r.tables.canonicalHandle(resource.KindShaderModule, desc.Stage.Module)
		canon.BaseHandle = r.tables.canonicalHandle(resource.KindComputePipeline, desc.BaseHandle)
		r.tables.computePipelines[hash] = &canon
	}
	r.tables.bindExternal(resource.KindComputePipeline, handle, hash)
	return hash, nil
}

// RecordGraphicsPipeline implements record_graphics_pipeline (§4.2).
func (r *Recorder) RecordGraphicsPipeline(handle resource.Handle, desc resource.GraphicsPipelineDesc) (resource.Hash, error) {
	hash, err := hasher.GraphicsPipeline(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting graphics pipeline", slog.Any("error", err))
		return 0, fmt.Errorf("recording graphics pipeline: %w", err)
	}
	if _, exists := r.tables.graphicsPipelines[hash]; !exists {
		canon := desc
		canon.Layout = r.tables.canonicalHandle(resource.KindPipelineLayout, desc.Layout)
		canon.RenderPass = r.tables.canonicalHandle(resource.KindRenderPass, desc.RenderPass)
		canon.BaseHandle = r.tables.canonicalHandle(resource.KindGraphicsPipeline, desc.BaseHandle)
		canon.Stages = make([]resource.ShaderStage, len(desc.Stages))
		for i, s := range desc.Stages {
			s.Module = r.tables.canonicalHandle(resource.KindShaderModule, s.Module)
			canon.Stages[i] = s
		}
		r.tables.graphicsPipelines[hash] = &canon
	}
	r.tables.bindExternal(resource.KindGraphicsPipeline, handle, hash)
	return hash, nil
}

// RecordApplicationInfo implements the application-info singleton
// (§4.2). First insert wins, per the general intern-table rule.
func (r *Recorder) RecordApplicationInfo(desc resource.ApplicationInfoDesc) (resource.Hash, error) {
	hash, err := hasher.ApplicationInfo(&desc, r.tables)
	if err != nil {
		return 0, fmt.Errorf("recording application info: %w", err)
	}
	if r.tables.applicationInfo == nil {
		r.tables.applicationInfo = &desc
		r.tables.applicationInfoHash = hash
	}
	return r.tables.applicationInfoHash, nil
}

// RecordPhysicalDeviceFeatures implements the device-features
// singleton (§4.2). First insert wins.
func (r *Recorder) RecordPhysicalDeviceFeatures(desc resource.PhysicalDeviceFeaturesDesc) (resource.Hash, error) {
	hash, err := hasher.PhysicalDeviceFeatures(&desc, r.tables)
	if err != nil {
		r.logger.Debug("rejecting physical device features", slog.Any("error", err))
		return 0, fmt.Errorf("recording physical device features: %w", err)
	}
	if r.tables.deviceFeatures == nil {
		r.tables.deviceFeatures = &desc
		r.tables.deviceFeaturesHash = hash
	}
	return r.tables.deviceFeaturesHash, nil
}

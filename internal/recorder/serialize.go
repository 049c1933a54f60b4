// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package recorder

import (
	"fmt"
	"sort"

	"github.com/ibriano/Fossilize/internal/resource"
	"github.com/ibriano/Fossilize/internal/wire"
)

// Serialize emits the recorder's entire interned state as the §6 wire
// document. Per-kind arrays are sorted by ascending hash so that two
// recorders holding the same triples produce byte-identical output
// regardless of map iteration order or call sequence (§4.2
// "Serialization MUST be deterministic").
func (r *Recorder) Serialize() ([]byte, error) {
	doc := &wire.Document{Version: wire.SchemaVersion}
	t := r.tables

	samplerHashes := sortedHashes(t.samplers)
	doc.Samplers = make([]wire.SamplerRecord, len(samplerHashes))
	for i, h := range samplerHashes {
		doc.Samplers[i] = wire.ToSamplerRecord(h, t.samplers[h])
	}

	dslHashes := sortedHashes(t.descriptorSetLayouts)
	doc.DescriptorSetLayouts = make([]wire.DescriptorSetLayoutRecord, len(dslHashes))
	for i, h := range dslHashes {
		doc.DescriptorSetLayouts[i] = wire.ToDescriptorSetLayoutRecord(h, t.descriptorSetLayouts[h])
	}

	plHashes := sortedHashes(t.pipelineLayouts)
	doc.PipelineLayouts = make([]wire.PipelineLayoutRecord, len(plHashes))
	for i, h := range plHashes {
		doc.PipelineLayouts[i] = wire.ToPipelineLayoutRecord(h, t.pipelineLayouts[h])
	}

	smHashes := sortedHashes(t.shaderModules)
	doc.ShaderModules = make([]wire.ShaderModuleRecord, len(smHashes))
	for i, h := range smHashes {
		doc.ShaderModules[i] = wire.ToShaderModuleRecord(h, t.shaderModules[h])
	}

	rpHashes := sortedHashes(t.renderPasses)
	doc.RenderPasses = make([]wire.RenderPassRecord, len(rpHashes))
	for i, h := range rpHashes {
		doc.RenderPasses[i] = wire.ToRenderPassRecord(h, t.renderPasses[h])
	}

	cpHashes := sortedHashes(t.computePipelines)
	doc.ComputePipelines = make([]wire.ComputePipelineRecord, len(cpHashes))
	for i, h := range cpHashes {
		doc.ComputePipelines[i] = wire.ToComputePipelineRecord(h, t.computePipelines[h])
	}

	gpHashes := sortedHashes(t.graphicsPipelines)
	doc.GraphicsPipelines = make([]wire.GraphicsPipelineRecord, len(gpHashes))
	for i, h := range gpHashes {
		doc.GraphicsPipelines[i] = wire.ToGraphicsPipelineRecord(h, t.graphicsPipelines[h])
	}

	if t.applicationInfo != nil {
		doc.ApplicationInfo = wire.ToApplicationInfoRecord(t.applicationInfoHash, t.applicationInfo)
	}
	if t.deviceFeatures != nil {
		doc.PhysicalDeviceFeatures2 = wire.ToPhysicalDeviceFeaturesRecord(t.deviceFeaturesHash, t.deviceFeatures)
	}

	return wire.Marshal(doc)
}

// Parse decodes a document previously produced by [Recorder.Serialize]
// back into a fresh intern state (§8 "parse(serialize(R)) yields an
// equivalent recorder state"). Hashes are trusted as written rather
// than recomputed — re-verification against the hasher is the
// replayer's job (§4.3), not the round-trip decoder's.
func Parse(data []byte) (*Tables, error) {
	doc, err := wire.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	t := NewTables()
	for _, rec := range doc.Samplers {
		hash, desc, err := wire.FromSamplerRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing sampler: %w", err)
		}
		t.samplers[hash] = desc
	}
	for _, rec := range doc.DescriptorSetLayouts {
		hash, desc, err := wire.FromDescriptorSetLayoutRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing descriptor set layout: %w", err)
		}
		t.descriptorSetLayouts[hash] = desc
	}
	for _, rec := range doc.PipelineLayouts {
		hash, desc, err := wire.FromPipelineLayoutRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing pipeline layout: %w", err)
		}
		t.pipelineLayouts[hash] = desc
	}
	for _, rec := range doc.ShaderModules {
		hash, desc, err := wire.FromShaderModuleRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing shader module: %w", err)
		}
		t.shaderModules[hash] = desc
	}
	for _, rec := range doc.RenderPasses {
		hash, desc, err := wire.FromRenderPassRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing render pass: %w", err)
		}
		t.renderPasses[hash] = desc
	}
	for _, rec := range doc.ComputePipelines {
		hash, desc, err := wire.FromComputePipelineRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing compute pipeline: %w", err)
		}
		t.computePipelines[hash] = desc
	}
	for _, rec := range doc.GraphicsPipelines {
		hash, desc, err := wire.FromGraphicsPipelineRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing graphics pipeline: %w", err)
		}
		t.graphicsPipelines[hash] = desc
	}
	if doc.ApplicationInfo != nil {
		hash, desc, err := wire.FromApplicationInfoRecord(doc.ApplicationInfo)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing application info: %w", err)
		}
		t.applicationInfo, t.applicationInfoHash = desc, hash
	}
	if doc.PhysicalDeviceFeatures2 != nil {
		hash, desc, err := wire.FromPhysicalDeviceFeaturesRecord(doc.PhysicalDeviceFeatures2)
		if err != nil {
			return nil, fmt.Errorf("recorder: parsing physical device features: %w", err)
		}
		t.deviceFeatures, t.deviceFeaturesHash = desc, hash
	}

	return t, nil
}

// sortedHashes returns m's keys in ascending order. Generic over the
// descriptor's pointer type so each call site at the Serialize
// callsite stays free of type assertions.
func sortedHashes[V any](m map[resource.Hash]V) []resource.Hash {
	hashes := make([]resource.Hash, 0, len(m))
	for h := range m {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	return hashes
}

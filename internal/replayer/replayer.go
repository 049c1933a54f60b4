// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package replayer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ibriano/Fossilize/internal/hasher"
	"github.com/ibriano/Fossilize/internal/recorder"
	"github.com/ibriano/Fossilize/internal/resource"
)

// Stats summarizes one Replay call (§4.3, §7): how many objects of
// each outcome were seen, for a caller that wants more than a pass/fail
// result.
type Stats struct {
	Delivered int
	Rejected  int // sink.Accept returned an error
	Mismatch  int // recomputed hash disagreed with the stored hash
	Cascaded  int // skipped because a dependency failed to deliver
}

// identityDeps resolves a canonicalized descriptor's dependency
// handles back to their own content hash. Parse already rewrote every
// dependency field to a [resource.ContentHashHandle], so resolving one
// is just unwrapping it; this lets Replay reuse the exact hasher
// formula the recorder used, without needing its own dependency graph.
type identityDeps struct{}

func (identityDeps) Resolve(_ resource.Kind, h resource.Handle) (resource.Hash, bool) {
	if h.Kind != resource.ContentHashHandle {
		return 0, false
	}
	return h.AsContentHash(), true
}

// Replay parses a document previously produced by [recorder.Recorder.Serialize]
// and delivers every object it contains to sink in topological order
// (§4.3): samplers and shader modules before the pipelines that
// reference them, both metadata singletons last.
//
// For each object, Replay first recomputes its hash from the
// canonical descriptor (§4.1 formula) and compares it against the
// hash stored in the document; a mismatch is logged and the object is
// skipped (§7 "Consistency"). Otherwise Replay substitutes every
// dependency field with the handle the sink returned when it accepted
// that dependency, then calls the matching Accept method. A sink
// rejection, or a dependency that itself failed to deliver, skips the
// object but never aborts the whole replay (§4.3 "delivery is aborted
// for that object but continues for siblings").
func Replay(data []byte, sink Sink, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var stats Stats

	tables, err := recorder.Parse(data)
	if err != nil {
		return stats, fmt.Errorf("replayer: %w", err)
	}

	handles := make(map[resource.Kind]map[resource.Hash]resource.Handle, len(resource.Kinds))
	for _, k := range resource.Kinds {
		handles[k] = make(map[resource.Hash]resource.Handle)
	}

	resolve := func(kind resource.Kind, h resource.Handle) (resource.Handle, bool) {
		if h.IsZero() {
			return resource.Handle{}, true
		}
		sub, ok := handles[kind][h.AsContentHash()]
		return sub, ok
	}

	for hash, desc := range tables.Samplers() {
		recomputed, err := hasher.Sampler(cloneSampler(desc), identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: sampler hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		h, acceptErr := sink.AcceptSampler(hash, desc)
		if acceptErr != nil {
			stats.Rejected++
			logger.Debug("replayer: sink rejected sampler", slog.Any("error", acceptErr))
			continue
		}
		handles[resource.KindSampler][hash] = h
		stats.Delivered++
	}

	for hash, desc := range tables.DescriptorSetLayouts() {
		recomputed, err := hasher.DescriptorSetLayout(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: descriptor set layout hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		delivery := *desc
		delivery.Bindings = make([]resource.DescriptorSetLayoutBinding, len(desc.Bindings))
		ok := true
		for i, b := range desc.Bindings {
			db := b
			db.ImmutableSamplers = make([]resource.Handle, len(b.ImmutableSamplers))
			for j, s := range b.ImmutableSamplers {
				sub, found := resolve(resource.KindSampler, s)
				if !found {
					ok = false
					break
				}
				db.ImmutableSamplers[j] = sub
			}
			delivery.Bindings[i] = db
			if !ok {
				break
			}
		}
		if !ok {
			stats.Cascaded++
			continue
		}
		h, acceptErr := sink.AcceptDescriptorSetLayout(hash, &delivery)
		if acceptErr != nil {
			stats.Rejected++
			continue
		}
		handles[resource.KindDescriptorSetLayout][hash] = h
		stats.Delivered++
	}

	for hash, desc := range tables.PipelineLayouts() {
		recomputed, err := hasher.PipelineLayout(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: pipeline layout hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		delivery := *desc
		delivery.SetLayouts = make([]resource.Handle, len(desc.SetLayouts))
		ok := true
		for i, s := range desc.SetLayouts {
			sub, found := resolve(resource.KindDescriptorSetLayout, s)
			if !found {
				ok = false
				break
			}
			delivery.SetLayouts[i] = sub
		}
		if !ok {
			stats.Cascaded++
			continue
		}
		h, acceptErr := sink.AcceptPipelineLayout(hash, &delivery)
		if acceptErr != nil {
			stats.Rejected++
			continue
		}
		handles[resource.KindPipelineLayout][hash] = h
		stats.Delivered++
	}

	for hash, desc := range tables.ShaderModules() {
		recomputed, err := hasher.ShaderModule(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: shader module hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		h, acceptErr := sink.AcceptShaderModule(hash, desc)
		if acceptErr != nil {
			stats.Rejected++
			continue
		}
		handles[resource.KindShaderModule][hash] = h
		stats.Delivered++
	}

	for hash, desc := range tables.RenderPasses() {
		recomputed, err := hasher.RenderPass(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: render pass hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		h, acceptErr := sink.AcceptRenderPass(hash, desc)
		if acceptErr != nil {
			stats.Rejected++
			continue
		}
		handles[resource.KindRenderPass][hash] = h
		stats.Delivered++
	}

	computePipelines := tables.ComputePipelines()
	for _, hash := range baseHandleOrder(computePipelines, func(d *resource.ComputePipelineDesc) resource.Handle { return d.BaseHandle }) {
		desc := computePipelines[hash]
		recomputed, err := hasher.ComputePipeline(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: compute pipeline hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		delivery := *desc
		layout, ok := resolve(resource.KindPipelineLayout, desc.Layout)
		module, okModule := resolve(resource.KindShaderModule, desc.Stage.Module)
		base, okBase := resolve(resource.KindComputePipeline, desc.BaseHandle)
		if !ok || !okModule || !okBase {
			stats.Cascaded++
			continue
		}
		delivery.Layout = layout
		delivery.Stage.Module = module
		delivery.BaseHandle = base
		h, acceptErr := sink.AcceptComputePipeline(hash, &delivery)
		if acceptErr != nil {
			stats.Rejected++
			continue
		}
		handles[resource.KindComputePipeline][hash] = h
		stats.Delivered++
	}

	graphicsPipelines := tables.GraphicsPipelines()
	for _, hash := range baseHandleOrder(graphicsPipelines, func(d *resource.GraphicsPipelineDesc) resource.Handle { return d.BaseHandle }) {
		desc := graphicsPipelines[hash]
		recomputed, err := hasher.GraphicsPipeline(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: graphics pipeline hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
			continue
		}
		delivery := *desc
		layout, ok := resolve(resource.KindPipelineLayout, desc.Layout)
		renderPass, okRP := resolve(resource.KindRenderPass, desc.RenderPass)
		base, okBase := resolve(resource.KindGraphicsPipeline, desc.BaseHandle)
		if !ok || !okRP || !okBase {
			stats.Cascaded++
			continue
		}
		delivery.Layout = layout
		delivery.RenderPass = renderPass
		delivery.BaseHandle = base
		delivery.Stages = make([]resource.ShaderStage, len(desc.Stages))
		okStages := true
		for i, s := range desc.Stages {
			sub, found := resolve(resource.KindShaderModule, s.Module)
			if !found {
				okStages = false
				break
			}
			s.Module = sub
			delivery.Stages[i] = s
		}
		if !okStages {
			stats.Cascaded++
			continue
		}
		h, acceptErr := sink.AcceptGraphicsPipeline(hash, &delivery)
		if acceptErr != nil {
			stats.Rejected++
			continue
		}
		handles[resource.KindGraphicsPipeline][hash] = h
		stats.Delivered++
	}

	if desc, hash, ok := tables.ApplicationInfo(); ok {
		recomputed, err := hasher.ApplicationInfo(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: application info hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
		} else if err := sink.AcceptApplicationInfo(hash, desc); err != nil {
			stats.Rejected++
		} else {
			stats.Delivered++
		}
	}

	if desc, hash, ok := tables.PhysicalDeviceFeatures(); ok {
		recomputed, err := hasher.PhysicalDeviceFeatures(desc, identityDeps{})
		if err != nil || recomputed != hash {
			stats.Mismatch++
			logger.Warn("replayer: physical device features hash mismatch", slog.Any("error", ErrHashMismatch), slog.Uint64("hash", uint64(hash)))
		} else if err := sink.AcceptPhysicalDeviceFeatures(hash, desc); err != nil {
			stats.Rejected++
		} else {
			stats.Delivered++
		}
	}

	return stats, nil
}

func cloneSampler(desc *resource.SamplerDesc) *resource.SamplerDesc {
	clone := *desc
	return &clone
}

// baseHandleOrder returns table's hashes ordered so that every object
// appears after the same-kind object its BaseHandle points to, when
// that base is itself present in table. Map iteration order is
// unspecified, so delivering a table in map order can visit a
// pipeline before the base it references; this walks the BaseHandle
// chain depth-first instead, the same ordering discipline
// resource.Kinds already gives cross-kind dependencies (§4.3
// "Topological delivery"). Starting hashes are visited in ascending
// order for determinism; a cycle (which a genuine content hash chain
// cannot produce) is broken rather than looped forever.
func baseHandleOrder[T any](table map[resource.Hash]*T, baseOf func(*T) resource.Handle) []resource.Hash {
	order := make([]resource.Hash, 0, len(table))
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[resource.Hash]int, len(table))

	var visit func(hash resource.Hash)
	visit = func(hash resource.Hash) {
		switch state[hash] {
		case done, visiting:
			return
		}
		state[hash] = visiting
		if desc, ok := table[hash]; ok {
			base := baseOf(desc)
			if base.Kind == resource.ContentHashHandle {
				if baseHash := base.AsContentHash(); baseHash != hash {
					if _, exists := table[baseHash]; exists {
						visit(baseHash)
					}
				}
			}
		}
		state[hash] = done
		order = append(order, hash)
	}

	hashes := make([]resource.Hash, 0, len(table))
	for hash := range table {
		hashes = append(hashes, hash)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	for _, hash := range hashes {
		visit(hash)
	}
	return order
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package resource defines the data model shared by the hasher,
// recorder, replayer, and archive: the resource kinds, the descriptor
// shapes each kind carries, and the handle/hash types used to
// cross-reference objects.
package resource

import "fmt"

// Kind identifies one of the GPU pipeline state object kinds this
// system knows how to hash, record, and replay. The numeric values are
// also the topological delivery order the replayer uses (§3, §4.3):
// lower-numbered kinds never depend on higher-numbered ones.
type Kind uint8

const (
	KindSampler Kind = iota
	KindDescriptorSetLayout
	KindPipelineLayout
	KindShaderModule
	KindRenderPass
	KindComputePipeline
	KindGraphicsPipeline
	KindApplicationInfo
	KindPhysicalDeviceFeatures

	// kindCount is the number of known kinds, used by Valid. Keep
	// last.
	kindCount
)

// Kinds lists every known kind in topological order, the order
// Recorder.Serialize emits arrays and Replay delivers objects.
var Kinds = []Kind{
	KindSampler,
	KindDescriptorSetLayout,
	KindPipelineLayout,
	KindShaderModule,
	KindRenderPass,
	KindComputePipeline,
	KindGraphicsPipeline,
	KindApplicationInfo,
	KindPhysicalDeviceFeatures,
}

func (k Kind) String() string {
	switch k {
	case KindSampler:
		return "Sampler"
	case KindDescriptorSetLayout:
		return "DescriptorSetLayout"
	case KindPipelineLayout:
		return "PipelineLayout"
	case KindShaderModule:
		return "ShaderModule"
	case KindRenderPass:
		return "RenderPass"
	case KindComputePipeline:
		return "ComputePipeline"
	case KindGraphicsPipeline:
		return "GraphicsPipeline"
	case KindApplicationInfo:
		return "ApplicationInfo"
	case KindPhysicalDeviceFeatures:
		return "PhysicalDeviceFeatures"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Singleton reports whether a kind has at most one instance per
// archive (ApplicationInfo, PhysicalDeviceFeatures), as opposed to a
// hash-keyed collection.
func (k Kind) Singleton() bool {
	return k == KindApplicationInfo || k == KindPhysicalDeviceFeatures
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

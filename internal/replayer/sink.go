// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package replayer implements the replay side of §4.3: parsing a
// serialized recorder document and delivering reconstructed
// descriptors to a user-supplied [Sink] in topological order, with
// hash re-verification and dependency handle substitution.
package replayer

import "github.com/ibriano/Fossilize/internal/resource"

// Sink is the capability set a replay consumer implements (§4.3
// "the capability set {accept-app-info, accept-sampler, ...}"),
// typically a driver-call dispatcher that actually creates GPU
// objects from the replayed descriptors.
//
// Accept methods for kinds other objects can depend on return the
// [resource.Handle] that dependents should be substituted with
// (§4.3 "Handle substitution") — a real driver handle if the sink
// created one, or resource.ContentHash(hash) if the sink has no
// handle of its own and is content identifying objects by hash.
// A non-nil error means the sink rejects the object (its own
// recompute did not match, or object creation failed); [Replay]
// skips that object and continues with its siblings.
type Sink interface {
	AcceptApplicationInfo(hash resource.Hash, desc *resource.ApplicationInfoDesc) error
	AcceptPhysicalDeviceFeatures(hash resource.Hash, desc *resource.PhysicalDeviceFeaturesDesc) error
	AcceptSampler(hash resource.Hash, desc *resource.SamplerDesc) (resource.Handle, error)
	AcceptDescriptorSetLayout(hash resource.Hash, desc *resource.DescriptorSetLayoutDesc) (resource.Handle, error)
	AcceptPipelineLayout(hash resource.Hash, desc *resource.PipelineLayoutDesc) (resource.Handle, error)
	AcceptShaderModule(hash resource.Hash, desc *resource.ShaderModuleDesc) (resource.Handle, error)
	AcceptRenderPass(hash resource.Hash, desc *resource.RenderPassDesc) (resource.Handle, error)
	AcceptComputePipeline(hash resource.Hash, desc *resource.ComputePipelineDesc) (resource.Handle, error)
	AcceptGraphicsPipeline(hash resource.Hash, desc *resource.GraphicsPipelineDesc) (resource.Handle, error)
}

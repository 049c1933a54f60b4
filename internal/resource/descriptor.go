// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package resource

// Enum8 is a small fixed-width enum value (filter modes, compare ops,
// border colors, ...). The hasher folds it as a single byte; the
// actual GPU-API meaning of the value is outside this system's
// concern (§1 Non-goals: "interpreting the semantic meaning of
// pipeline state").
type Enum8 uint8

// SamplerDesc captures the fields of a sampler creation descriptor
// (§3.1). Extensions carries the optional pNext chain.
type SamplerDesc struct {
	MagFilter               Enum8
	MinFilter               Enum8
	MipmapMode              Enum8
	AddressModeU            Enum8
	AddressModeV            Enum8
	AddressModeW            Enum8
	MipLodBias              float32
	AnisotropyEnable        bool
	MaxAnisotropy           float32
	CompareEnable           bool
	CompareOp               Enum8
	MinLod                  float32
	MaxLod                  float32
	BorderColor             Enum8
	UnnormalizedCoordinates bool
	Extensions              []Extension
}

// DescriptorSetLayoutBinding is one binding slot within a descriptor
// set layout.
type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     Enum8
	DescriptorCount    uint32
	StageFlags         uint32
	ImmutableSamplers  []Handle // each resolves to a KindSampler object
}

// DescriptorSetLayoutDesc captures a descriptor set layout (§3.1).
type DescriptorSetLayoutDesc struct {
	Flags    uint32
	Bindings []DescriptorSetLayoutBinding
}

// PushConstantRange is one push-constant range within a pipeline
// layout.
type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

// PipelineLayoutDesc captures a pipeline layout (§3.1).
type PipelineLayoutDesc struct {
	SetLayouts         []Handle // each resolves to a KindDescriptorSetLayout object
	PushConstantRanges []PushConstantRange
}

// ShaderModuleDesc captures a shader module (§3.1). Code holds the
// raw SPIR-V words as bytes (base64-encoded on the wire, §6).
type ShaderModuleDesc struct {
	Code []byte
}

// Attachment is one render pass attachment description.
type Attachment struct {
	Format         uint32
	Samples        uint32
	LoadOp         Enum8
	StoreOp        Enum8
	StencilLoadOp  Enum8
	StencilStoreOp Enum8
	InitialLayout  Enum8
	FinalLayout    Enum8
}

// Subpass is one render pass subpass description. Attachment indices
// are local to the render pass's Attachments slice, not handles.
type Subpass struct {
	PipelineBindPoint    Enum8
	InputAttachments     []uint32
	ColorAttachments     []uint32
	ResolveAttachments   []uint32
	DepthStencilAttached bool
	DepthStencilIndex    uint32
	PreserveAttachments  []uint32
}

// SubpassDependency is one inter-subpass dependency.
type SubpassDependency struct {
	SrcSubpass    uint32
	DstSubpass    uint32
	SrcStageMask  uint32
	DstStageMask  uint32
	SrcAccessMask uint32
	DstAccessMask uint32
	DependencyFlags uint32
}

// RenderPassDesc captures a render pass (§3.1). The hasher folds
// exactly DependencyCount entries of Dependencies, per §3.1 and the
// §9 Open Question: a populated-but-uncounted tail is never hashed.
type RenderPassDesc struct {
	Attachments     []Attachment
	Subpasses       []Subpass
	DependencyCount uint32
	Dependencies    []SubpassDependency
}

// ShaderStage is one shader stage attached to a compute or graphics
// pipeline.
type ShaderStage struct {
	Stage              uint32
	Module             Handle // resolves to a KindShaderModule object
	EntryPoint         string
	SpecializationData []byte
}

// ComputePipelineDesc captures a compute pipeline (§3.1). BaseHandle
// is the zero Handle when the pipeline has no base.
type ComputePipelineDesc struct {
	Layout     Handle // resolves to a KindPipelineLayout object
	Stage      ShaderStage
	BaseHandle Handle // resolves to a KindComputePipeline object, or zero
}

// VertexInputBinding is one vertex buffer binding.
type VertexInputBinding struct {
	Binding   uint32
	Stride    uint32
	InputRate Enum8
}

// VertexInputAttribute is one vertex attribute description.
type VertexInputAttribute struct {
	Location uint32
	Binding  uint32
	Format   uint32
	Offset   uint32
}

// GraphicsPipelineDesc captures a graphics pipeline (§3.1). BaseHandle
// is the zero Handle when the pipeline has no base, otherwise it
// resolves to another KindGraphicsPipeline object (§3).
type GraphicsPipelineDesc struct {
	Layout                 Handle // resolves to a KindPipelineLayout object
	RenderPass             Handle // resolves to a KindRenderPass object
	Stages                 []ShaderStage
	VertexInputBindings    []VertexInputBinding
	VertexInputAttributes  []VertexInputAttribute
	Subpass                uint32
	BaseHandle             Handle
}

// ApplicationInfoDesc captures the singleton application metadata
// (§3.1).
type ApplicationInfoDesc struct {
	ApplicationName    string
	EngineName         string
	ApplicationVersion uint32
	EngineVersion      uint32
	APIVersion         uint32
}

// PhysicalDeviceFeaturesDesc captures the singleton device feature
// set (§3.1): a flat block of feature toggles plus an extension
// chain, mirroring VkPhysicalDeviceFeatures2.
type PhysicalDeviceFeaturesDesc struct {
	RobustBufferAccess      bool
	FullDrawIndexUint32     bool
	ImageCubeArray          bool
	IndependentBlend        bool
	GeometryShader          bool
	TessellationShader      bool
	SampleRateShading       bool
	DualSrcBlend            bool
	MultiDrawIndirect       bool
	DepthClamp              bool
	DepthBiasClamp          bool
	FillModeNonSolid        bool
	WideLines               bool
	LargePoints             bool
	MultiViewport           bool
	SamplerAnisotropy       bool
	Extensions              []Extension
}

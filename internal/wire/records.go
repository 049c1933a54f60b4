// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/base64"

	"github.com/ibriano/Fossilize/internal/resource"
)

// Each record type below mirrors one resource descriptor (§3.1) plus
// its content hash. ToXRecord/FromXRecord pairs convert between the
// in-memory descriptor and its wire form; they never touch the
// hasher, so they carry no opinion about validity.

// SamplerRecord is the wire form of a sampler (§3.1 SamplerDesc).
type SamplerRecord struct {
	Hash                    string            `json:"hash"`
	MagFilter               uint8             `json:"magFilter"`
	MinFilter               uint8             `json:"minFilter"`
	MipmapMode              uint8             `json:"mipmapMode"`
	AddressModeU            uint8             `json:"addressModeU"`
	AddressModeV            uint8             `json:"addressModeV"`
	AddressModeW            uint8             `json:"addressModeW"`
	MipLodBias              float32           `json:"mipLodBias"`
	AnisotropyEnable        bool              `json:"anisotropyEnable"`
	MaxAnisotropy           float32           `json:"maxAnisotropy"`
	CompareEnable           bool              `json:"compareEnable"`
	CompareOp               uint8             `json:"compareOp"`
	MinLod                  float32           `json:"minLod"`
	MaxLod                  float32           `json:"maxLod"`
	BorderColor             uint8             `json:"borderColor"`
	UnnormalizedCoordinates bool              `json:"unnormalizedCoordinates"`
	Extensions              []ExtensionRecord `json:"extensions,omitempty"`
}

func ToSamplerRecord(hash resource.Hash, d *resource.SamplerDesc) SamplerRecord {
	return SamplerRecord{
		Hash:                    hash.String(),
		MagFilter:               uint8(d.MagFilter),
		MinFilter:               uint8(d.MinFilter),
		MipmapMode:              uint8(d.MipmapMode),
		AddressModeU:            uint8(d.AddressModeU),
		AddressModeV:            uint8(d.AddressModeV),
		AddressModeW:            uint8(d.AddressModeW),
		MipLodBias:              d.MipLodBias,
		AnisotropyEnable:        d.AnisotropyEnable,
		MaxAnisotropy:           d.MaxAnisotropy,
		CompareEnable:           d.CompareEnable,
		CompareOp:               uint8(d.CompareOp),
		MinLod:                  d.MinLod,
		MaxLod:                  d.MaxLod,
		BorderColor:             uint8(d.BorderColor),
		UnnormalizedCoordinates: d.UnnormalizedCoordinates,
		Extensions:              ToExtensionRecords(d.Extensions),
	}
}

func FromSamplerRecord(r SamplerRecord) (resource.Hash, *resource.SamplerDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	exts, err := FromExtensionRecords(r.Extensions)
	if err != nil {
		return 0, nil, err
	}
	return hash, &resource.SamplerDesc{
		MagFilter:               resource.Enum8(r.MagFilter),
		MinFilter:               resource.Enum8(r.MinFilter),
		MipmapMode:              resource.Enum8(r.MipmapMode),
		AddressModeU:            resource.Enum8(r.AddressModeU),
		AddressModeV:            resource.Enum8(r.AddressModeV),
		AddressModeW:            resource.Enum8(r.AddressModeW),
		MipLodBias:              r.MipLodBias,
		AnisotropyEnable:        r.AnisotropyEnable,
		MaxAnisotropy:           r.MaxAnisotropy,
		CompareEnable:           r.CompareEnable,
		CompareOp:               resource.Enum8(r.CompareOp),
		MinLod:                  r.MinLod,
		MaxLod:                  r.MaxLod,
		BorderColor:             resource.Enum8(r.BorderColor),
		UnnormalizedCoordinates: r.UnnormalizedCoordinates,
		Extensions:              exts,
	}, nil
}

// DescriptorSetLayoutBindingRecord is the wire form of one binding
// slot (§3.1 DescriptorSetLayoutBinding).
type DescriptorSetLayoutBindingRecord struct {
	Binding           uint32         `json:"binding"`
	DescriptorType    uint8          `json:"descriptorType"`
	DescriptorCount   uint32         `json:"descriptorCount"`
	StageFlags        uint32         `json:"stageFlags"`
	ImmutableSamplers []HandleRecord `json:"immutableSamplers,omitempty"`
}

// DescriptorSetLayoutRecord is the wire form of a descriptor set
// layout (§3.1 DescriptorSetLayoutDesc).
type DescriptorSetLayoutRecord struct {
	Hash     string                             `json:"hash"`
	Flags    uint32                             `json:"flags"`
	Bindings []DescriptorSetLayoutBindingRecord `json:"bindings,omitempty"`
}

func ToDescriptorSetLayoutRecord(hash resource.Hash, d *resource.DescriptorSetLayoutDesc) DescriptorSetLayoutRecord {
	bindings := make([]DescriptorSetLayoutBindingRecord, len(d.Bindings))
	for i, b := range d.Bindings {
		samplers := make([]HandleRecord, len(b.ImmutableSamplers))
		for j, s := range b.ImmutableSamplers {
			samplers[j] = ToHandleRecord(s)
		}
		bindings[i] = DescriptorSetLayoutBindingRecord{
			Binding:           b.Binding,
			DescriptorType:    uint8(b.DescriptorType),
			DescriptorCount:   b.DescriptorCount,
			StageFlags:        b.StageFlags,
			ImmutableSamplers: samplers,
		}
	}
	return DescriptorSetLayoutRecord{Hash: hash.String(), Flags: d.Flags, Bindings: bindings}
}

func FromDescriptorSetLayoutRecord(r DescriptorSetLayoutRecord) (resource.Hash, *resource.DescriptorSetLayoutDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	bindings := make([]resource.DescriptorSetLayoutBinding, len(r.Bindings))
	for i, b := range r.Bindings {
		samplers := make([]resource.Handle, len(b.ImmutableSamplers))
		for j, s := range b.ImmutableSamplers {
			h, err := FromHandleRecord(s)
			if err != nil {
				return 0, nil, err
			}
			samplers[j] = h
		}
		bindings[i] = resource.DescriptorSetLayoutBinding{
			Binding:           b.Binding,
			DescriptorType:    resource.Enum8(b.DescriptorType),
			DescriptorCount:   b.DescriptorCount,
			StageFlags:        b.StageFlags,
			ImmutableSamplers: samplers,
		}
	}
	return hash, &resource.DescriptorSetLayoutDesc{Flags: r.Flags, Bindings: bindings}, nil
}

// PushConstantRangeRecord is the wire form of a push-constant range.
type PushConstantRangeRecord struct {
	StageFlags uint32 `json:"stageFlags"`
	Offset     uint32 `json:"offset"`
	Size       uint32 `json:"size"`
}

// PipelineLayoutRecord is the wire form of a pipeline layout (§3.1
// PipelineLayoutDesc).
type PipelineLayoutRecord struct {
	Hash               string                    `json:"hash"`
	SetLayouts         []HandleRecord            `json:"setLayouts,omitempty"`
	PushConstantRanges []PushConstantRangeRecord `json:"pushConstantRanges,omitempty"`
}

func ToPipelineLayoutRecord(hash resource.Hash, d *resource.PipelineLayoutDesc) PipelineLayoutRecord {
	setLayouts := make([]HandleRecord, len(d.SetLayouts))
	for i, h := range d.SetLayouts {
		setLayouts[i] = ToHandleRecord(h)
	}
	ranges := make([]PushConstantRangeRecord, len(d.PushConstantRanges))
	for i, r := range d.PushConstantRanges {
		ranges[i] = PushConstantRangeRecord{StageFlags: r.StageFlags, Offset: r.Offset, Size: r.Size}
	}
	return PipelineLayoutRecord{Hash: hash.String(), SetLayouts: setLayouts, PushConstantRanges: ranges}
}

func FromPipelineLayoutRecord(r PipelineLayoutRecord) (resource.Hash, *resource.PipelineLayoutDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	setLayouts := make([]resource.Handle, len(r.SetLayouts))
	for i, h := range r.SetLayouts {
		parsed, err := FromHandleRecord(h)
		if err != nil {
			return 0, nil, err
		}
		setLayouts[i] = parsed
	}
	ranges := make([]resource.PushConstantRange, len(r.PushConstantRanges))
	for i, pr := range r.PushConstantRanges {
		ranges[i] = resource.PushConstantRange{StageFlags: pr.StageFlags, Offset: pr.Offset, Size: pr.Size}
	}
	return hash, &resource.PipelineLayoutDesc{SetLayouts: setLayouts, PushConstantRanges: ranges}, nil
}

// ShaderModuleRecord is the wire form of a shader module (§3.1
// ShaderModuleDesc). Code is base64-encoded (§6).
type ShaderModuleRecord struct {
	Hash string `json:"hash"`
	Code string `json:"code"`
}

func ToShaderModuleRecord(hash resource.Hash, d *resource.ShaderModuleDesc) ShaderModuleRecord {
	return ShaderModuleRecord{Hash: hash.String(), Code: base64.StdEncoding.EncodeToString(d.Code)}
}

func FromShaderModuleRecord(r ShaderModuleRecord) (resource.Hash, *resource.ShaderModuleDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	code, err := base64.StdEncoding.DecodeString(r.Code)
	if err != nil {
		return 0, nil, err
	}
	return hash, &resource.ShaderModuleDesc{Code: code}, nil
}

// AttachmentRecord is the wire form of a render pass attachment.
type AttachmentRecord struct {
	Format         uint32 `json:"format"`
	Samples        uint32 `json:"samples"`
	LoadOp         uint8  `json:"loadOp"`
	StoreOp        uint8  `json:"storeOp"`
	StencilLoadOp  uint8  `json:"stencilLoadOp"`
	StencilStoreOp uint8  `json:"stencilStoreOp"`
	InitialLayout  uint8  `json:"initialLayout"`
	FinalLayout    uint8  `json:"finalLayout"`
}

// SubpassRecord is the wire form of a render pass subpass.
type SubpassRecord struct {
	PipelineBindPoint    uint8    `json:"pipelineBindPoint"`
	InputAttachments     []uint32 `json:"inputAttachments,omitempty"`
	ColorAttachments     []uint32 `json:"colorAttachments,omitempty"`
	ResolveAttachments   []uint32 `json:"resolveAttachments,omitempty"`
	DepthStencilAttached bool     `json:"depthStencilAttached"`
	DepthStencilIndex    uint32   `json:"depthStencilIndex,omitempty"`
	PreserveAttachments  []uint32 `json:"preserveAttachments,omitempty"`
}

// SubpassDependencyRecord is the wire form of a subpass dependency.
type SubpassDependencyRecord struct {
	SrcSubpass      uint32 `json:"srcSubpass"`
	DstSubpass      uint32 `json:"dstSubpass"`
	SrcStageMask    uint32 `json:"srcStageMask"`
	DstStageMask    uint32 `json:"dstStageMask"`
	SrcAccessMask   uint32 `json:"srcAccessMask"`
	DstAccessMask   uint32 `json:"dstAccessMask"`
	DependencyFlags uint32 `json:"dependencyFlags"`
}

// RenderPassRecord is the wire form of a render pass (§3.1
// RenderPassDesc). DependencyCount is carried explicitly because the
// hasher only folds that many entries of Dependencies (§9 Open
// Question); the wire form preserves a populated-but-uncounted tail
// verbatim rather than truncating it, so round-tripping a recorder's
// exact descriptor stays lossless.
type RenderPassRecord struct {
	Hash            string                    `json:"hash"`
	Attachments     []AttachmentRecord        `json:"attachments,omitempty"`
	Subpasses       []SubpassRecord           `json:"subpasses,omitempty"`
	DependencyCount uint32                    `json:"dependencyCount"`
	Dependencies    []SubpassDependencyRecord `json:"dependencies,omitempty"`
}

func ToRenderPassRecord(hash resource.Hash, d *resource.RenderPassDesc) RenderPassRecord {
	attachments := make([]AttachmentRecord, len(d.Attachments))
	for i, a := range d.Attachments {
		attachments[i] = AttachmentRecord{
			Format: a.Format, Samples: a.Samples,
			LoadOp: uint8(a.LoadOp), StoreOp: uint8(a.StoreOp),
			StencilLoadOp: uint8(a.StencilLoadOp), StencilStoreOp: uint8(a.StencilStoreOp),
			InitialLayout: uint8(a.InitialLayout), FinalLayout: uint8(a.FinalLayout),
		}
	}
	subpasses := make([]SubpassRecord, len(d.Subpasses))
	for i, s := range d.Subpasses {
		subpasses[i] = SubpassRecord{
			PipelineBindPoint:    uint8(s.PipelineBindPoint),
			InputAttachments:     s.InputAttachments,
			ColorAttachments:     s.ColorAttachments,
			ResolveAttachments:   s.ResolveAttachments,
			DepthStencilAttached: s.DepthStencilAttached,
			DepthStencilIndex:    s.DepthStencilIndex,
			PreserveAttachments:  s.PreserveAttachments,
		}
	}
	deps := make([]SubpassDependencyRecord, len(d.Dependencies))
	for i, dep := range d.Dependencies {
		deps[i] = SubpassDependencyRecord{
			SrcSubpass: dep.SrcSubpass, DstSubpass: dep.DstSubpass,
			SrcStageMask: dep.SrcStageMask, DstStageMask: dep.DstStageMask,
			SrcAccessMask: dep.SrcAccessMask, DstAccessMask: dep.DstAccessMask,
			DependencyFlags: dep.DependencyFlags,
		}
	}
	return RenderPassRecord{
		Hash: hash.String(), Attachments: attachments, Subpasses: subpasses,
		DependencyCount: d.DependencyCount, Dependencies: deps,
	}
}

func FromRenderPassRecord(r RenderPassRecord) (resource.Hash, *resource.RenderPassDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	attachments := make([]resource.Attachment, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = resource.Attachment{
			Format: a.Format, Samples: a.Samples,
			LoadOp: resource.Enum8(a.LoadOp), StoreOp: resource.Enum8(a.StoreOp),
			StencilLoadOp: resource.Enum8(a.StencilLoadOp), StencilStoreOp: resource.Enum8(a.StencilStoreOp),
			InitialLayout: resource.Enum8(a.InitialLayout), FinalLayout: resource.Enum8(a.FinalLayout),
		}
	}
	subpasses := make([]resource.Subpass, len(r.Subpasses))
	for i, s := range r.Subpasses {
		subpasses[i] = resource.Subpass{
			PipelineBindPoint:    resource.Enum8(s.PipelineBindPoint),
			InputAttachments:     s.InputAttachments,
			ColorAttachments:     s.ColorAttachments,
			ResolveAttachments:   s.ResolveAttachments,
			DepthStencilAttached: s.DepthStencilAttached,
			DepthStencilIndex:    s.DepthStencilIndex,
			PreserveAttachments:  s.PreserveAttachments,
		}
	}
	deps := make([]resource.SubpassDependency, len(r.Dependencies))
	for i, d := range r.Dependencies {
		deps[i] = resource.SubpassDependency{
			SrcSubpass: d.SrcSubpass, DstSubpass: d.DstSubpass,
			SrcStageMask: d.SrcStageMask, DstStageMask: d.DstStageMask,
			SrcAccessMask: d.SrcAccessMask, DstAccessMask: d.DstAccessMask,
			DependencyFlags: d.DependencyFlags,
		}
	}
	return hash, &resource.RenderPassDesc{
		Attachments: attachments, Subpasses: subpasses,
		DependencyCount: r.DependencyCount, Dependencies: deps,
	}, nil
}

// ShaderStageRecord is the wire form of a shader stage attached to a
// compute or graphics pipeline.
type ShaderStageRecord struct {
	Stage              uint32       `json:"stage"`
	Module             HandleRecord `json:"module"`
	EntryPoint         string       `json:"entryPoint"`
	SpecializationData string       `json:"specializationData,omitempty"`
}

func toShaderStageRecord(s resource.ShaderStage) ShaderStageRecord {
	return ShaderStageRecord{
		Stage:              s.Stage,
		Module:             ToHandleRecord(s.Module),
		EntryPoint:         s.EntryPoint,
		SpecializationData: base64.StdEncoding.EncodeToString(s.SpecializationData),
	}
}

func fromShaderStageRecord(r ShaderStageRecord) (resource.ShaderStage, error) {
	module, err := FromHandleRecord(r.Module)
	if err != nil {
		return resource.ShaderStage{}, err
	}
	spec, err := base64.StdEncoding.DecodeString(r.SpecializationData)
	if err != nil {
		return resource.ShaderStage{}, err
	}
	return resource.ShaderStage{Stage: r.Stage, Module: module, EntryPoint: r.EntryPoint, SpecializationData: spec}, nil
}

// ComputePipelineRecord is the wire form of a compute pipeline (§3.1
// ComputePipelineDesc).
type ComputePipelineRecord struct {
	Hash       string            `json:"hash"`
	Layout     HandleRecord      `json:"layout"`
	Stage      ShaderStageRecord `json:"stage"`
	BaseHandle HandleRecord      `json:"baseHandle"`
}

func ToComputePipelineRecord(hash resource.Hash, d *resource.ComputePipelineDesc) ComputePipelineRecord {
	return ComputePipelineRecord{
		Hash: hash.String(), Layout: ToHandleRecord(d.Layout),
		Stage: toShaderStageRecord(d.Stage), BaseHandle: ToHandleRecord(d.BaseHandle),
	}
}

func FromComputePipelineRecord(r ComputePipelineRecord) (resource.Hash, *resource.ComputePipelineDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	layout, err := FromHandleRecord(r.Layout)
	if err != nil {
		return 0, nil, err
	}
	stage, err := fromShaderStageRecord(r.Stage)
	if err != nil {
		return 0, nil, err
	}
	base, err := FromHandleRecord(r.BaseHandle)
	if err != nil {
		return 0, nil, err
	}
	return hash, &resource.ComputePipelineDesc{Layout: layout, Stage: stage, BaseHandle: base}, nil
}

// VertexInputBindingRecord is the wire form of a vertex buffer binding.
type VertexInputBindingRecord struct {
	Binding   uint32 `json:"binding"`
	Stride    uint32 `json:"stride"`
	InputRate uint8  `json:"inputRate"`
}

// VertexInputAttributeRecord is the wire form of a vertex attribute.
type VertexInputAttributeRecord struct {
	Location uint32 `json:"location"`
	Binding  uint32 `json:"binding"`
	Format   uint32 `json:"format"`
	Offset   uint32 `json:"offset"`
}

// GraphicsPipelineRecord is the wire form of a graphics pipeline
// (§3.1 GraphicsPipelineDesc).
type GraphicsPipelineRecord struct {
	Hash                  string                       `json:"hash"`
	Layout                HandleRecord                 `json:"layout"`
	RenderPass            HandleRecord                 `json:"renderPass"`
	Stages                []ShaderStageRecord          `json:"stages,omitempty"`
	VertexInputBindings   []VertexInputBindingRecord   `json:"vertexInputBindings,omitempty"`
	VertexInputAttributes []VertexInputAttributeRecord `json:"vertexInputAttributes,omitempty"`
	Subpass               uint32                       `json:"subpass"`
	BaseHandle            HandleRecord                 `json:"baseHandle"`
}

func ToGraphicsPipelineRecord(hash resource.Hash, d *resource.GraphicsPipelineDesc) GraphicsPipelineRecord {
	stages := make([]ShaderStageRecord, len(d.Stages))
	for i, s := range d.Stages {
		stages[i] = toShaderStageRecord(s)
	}
	bindings := make([]VertexInputBindingRecord, len(d.VertexInputBindings))
	for i, b := range d.VertexInputBindings {
		bindings[i] = VertexInputBindingRecord{Binding: b.Binding, Stride: b.Stride, InputRate: uint8(b.InputRate)}
	}
	attrs := make([]VertexInputAttributeRecord, len(d.VertexInputAttributes))
	for i, a := range d.VertexInputAttributes {
		attrs[i] = VertexInputAttributeRecord{Location: a.Location, Binding: a.Binding, Format: a.Format, Offset: a.Offset}
	}
	return GraphicsPipelineRecord{
		Hash: hash.String(), Layout: ToHandleRecord(d.Layout), RenderPass: ToHandleRecord(d.RenderPass),
		Stages: stages, VertexInputBindings: bindings, VertexInputAttributes: attrs,
		Subpass: d.Subpass, BaseHandle: ToHandleRecord(d.BaseHandle),
	}
}

func FromGraphicsPipelineRecord(r GraphicsPipelineRecord) (resource.Hash, *resource.GraphicsPipelineDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	layout, err := FromHandleRecord(r.Layout)
	if err != nil {
		return 0, nil, err
	}
	renderPass, err := FromHandleRecord(r.RenderPass)
	if err != nil {
		return 0, nil, err
	}
	base, err := FromHandleRecord(r.BaseHandle)
	if err != nil {
		return 0, nil, err
	}
	stages := make([]resource.ShaderStage, len(r.Stages))
	for i, s := range r.Stages {
		stage, err := fromShaderStageRecord(s)
		if err != nil {
			return 0, nil, err
		}
		stages[i] = stage
	}
	bindings := make([]resource.VertexInputBinding, len(r.VertexInputBindings))
	for i, b := range r.VertexInputBindings {
		bindings[i] = resource.VertexInputBinding{Binding: b.Binding, Stride: b.Stride, InputRate: resource.Enum8(b.InputRate)}
	}
	attrs := make([]resource.VertexInputAttribute, len(r.VertexInputAttributes))
	for i, a := range r.VertexInputAttributes {
		attrs[i] = resource.VertexInputAttribute{Location: a.Location, Binding: a.Binding, Format: a.Format, Offset: a.Offset}
	}
	return hash, &resource.GraphicsPipelineDesc{
		Layout: layout, RenderPass: renderPass, Stages: stages,
		VertexInputBindings: bindings, VertexInputAttributes: attrs,
		Subpass: r.Subpass, BaseHandle: base,
	}, nil
}

// ApplicationInfoRecord is the wire form of the singleton application
// metadata (§3.1 ApplicationInfoDesc).
type ApplicationInfoRecord struct {
	Hash               string `json:"hash"`
	ApplicationName    string `json:"applicationName"`
	EngineName         string `json:"engineName"`
	ApplicationVersion uint32 `json:"applicationVersion"`
	EngineVersion      uint32 `json:"engineVersion"`
	APIVersion         uint32 `json:"apiVersion"`
}

func ToApplicationInfoRecord(hash resource.Hash, d *resource.ApplicationInfoDesc) *ApplicationInfoRecord {
	return &ApplicationInfoRecord{
		Hash: hash.String(), ApplicationName: d.ApplicationName, EngineName: d.EngineName,
		ApplicationVersion: d.ApplicationVersion, EngineVersion: d.EngineVersion, APIVersion: d.APIVersion,
	}
}

func FromApplicationInfoRecord(r *ApplicationInfoRecord) (resource.Hash, *resource.ApplicationInfoDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	return hash, &resource.ApplicationInfoDesc{
		ApplicationName: r.ApplicationName, EngineName: r.EngineName,
		ApplicationVersion: r.ApplicationVersion, EngineVersion: r.EngineVersion, APIVersion: r.APIVersion,
	}, nil
}

// PhysicalDeviceFeaturesRecord is the wire form of the singleton
// device feature set (§3.1 PhysicalDeviceFeaturesDesc).
type PhysicalDeviceFeaturesRecord struct {
	Hash                string            `json:"hash"`
	RobustBufferAccess  bool              `json:"robustBufferAccess"`
	FullDrawIndexUint32 bool              `json:"fullDrawIndexUint32"`
	ImageCubeArray      bool              `json:"imageCubeArray"`
	IndependentBlend    bool              `json:"independentBlend"`
	GeometryShader      bool              `json:"geometryShader"`
	TessellationShader  bool              `json:"tessellationShader"`
	SampleRateShading   bool              `json:"sampleRateShading"`
	DualSrcBlend        bool              `json:"dualSrcBlend"`
	MultiDrawIndirect   bool              `json:"multiDrawIndirect"`
	DepthClamp          bool              `json:"depthClamp"`
	DepthBiasClamp      bool              `json:"depthBiasClamp"`
	FillModeNonSolid    bool              `json:"fillModeNonSolid"`
	WideLines           bool              `json:"wideLines"`
	LargePoints         bool              `json:"largePoints"`
	MultiViewport       bool              `json:"multiViewport"`
	SamplerAnisotropy   bool              `json:"samplerAnisotropy"`
	Extensions          []ExtensionRecord `json:"extensions,omitempty"`
}

func ToPhysicalDeviceFeaturesRecord(hash resource.Hash, d *resource.PhysicalDeviceFeaturesDesc) *PhysicalDeviceFeaturesRecord {
	return &PhysicalDeviceFeaturesRecord{
		Hash: hash.String(), RobustBufferAccess: d.RobustBufferAccess, FullDrawIndexUint32: d.FullDrawIndexUint32,
		ImageCubeArray: d.ImageCubeArray, IndependentBlend: d.IndependentBlend, GeometryShader: d.GeometryShader,
		TessellationShader: d.TessellationShader, SampleRateShading: d.SampleRateShading, DualSrcBlend: d.DualSrcBlend,
		MultiDrawIndirect: d.MultiDrawIndirect, DepthClamp: d.DepthClamp, DepthBiasClamp: d.DepthBiasClamp,
		FillModeNonSolid: d.FillModeNonSolid, WideLines: d.WideLines, LargePoints: d.LargePoints,
		MultiViewport: d.MultiViewport, SamplerAnisotropy: d.SamplerAnisotropy,
		Extensions: ToExtensionRecords(d.Extensions),
	}
}

func FromPhysicalDeviceFeaturesRecord(r *PhysicalDeviceFeaturesRecord) (resource.Hash, *resource.PhysicalDeviceFeaturesDesc, error) {
	hash, err := resource.ParseHash(r.Hash)
	if err != nil {
		return 0, nil, err
	}
	exts, err := FromExtensionRecords(r.Extensions)
	if err != nil {
		return 0, nil, err
	}
	return hash, &resource.PhysicalDeviceFeaturesDesc{
		RobustBufferAccess: r.RobustBufferAccess, FullDrawIndexUint32: r.FullDrawIndexUint32,
		ImageCubeArray: r.ImageCubeArray, IndependentBlend: r.IndependentBlend, GeometryShader: r.GeometryShader,
		TessellationShader: r.TessellationShader, SampleRateShading: r.SampleRateShading, DualSrcBlend: r.DualSrcBlend,
		MultiDrawIndirect: r.MultiDrawIndirect, DepthClamp: r.DepthClamp, DepthBiasClamp: r.DepthBiasClamp,
		FillModeNonSolid: r.FillModeNonSolid, WideLines: r.WideLines, LargePoints: r.LargePoints,
		MultiViewport: r.MultiViewport, SamplerAnisotropy: r.SamplerAnisotropy, Extensions: exts,
	}, nil
}

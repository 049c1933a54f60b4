// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package resource

// ExtensionType tags one link of a descriptor's extension chain
// (§9 GLOSSARY "Extension chain"), standing in for a Vulkan
// `VkStructureType` on a `pNext` record. Only the values listed here
// are recognized; any other value is a structural error
// ([hasher.ErrUnsupportedExtension]) rather than something the
// recorder silently skips.
type ExtensionType uint32

const (
	// ExtensionSamplerYcbcrConversion corresponds to
	// VkSamplerYcbcrConversionInfo chained off a sampler descriptor.
	ExtensionSamplerYcbcrConversion ExtensionType = 1

	// ExtensionSamplerReductionMode corresponds to
	// VkSamplerReductionModeCreateInfo chained off a sampler
	// descriptor.
	ExtensionSamplerReductionMode ExtensionType = 2
)

// Extension is one link of a descriptor's chain. Data is the
// canonical encoding of the extension's own fields — this package
// does not interpret it beyond hashing it verbatim, since the hasher
// folds recognized extensions by type and raw payload (§4.1).
type Extension struct {
	Type ExtensionType
	Data []byte
}

// SamplerYcbcrConversionData is the canonical payload recorded for an
// ExtensionSamplerYcbcrConversion link.
type SamplerYcbcrConversionData struct {
	Format            uint32
	YcbcrModel        uint32
	YcbcrRange        uint32
	ComponentMapping  [4]uint32
	XChromaOffset     uint32
	YChromaOffset     uint32
	ChromaFilter      uint32
	ForceExplicitRecon bool
}

// SamplerReductionModeData is the canonical payload recorded for an
// ExtensionSamplerReductionMode link.
type SamplerReductionModeData struct {
	ReductionMode uint32
}

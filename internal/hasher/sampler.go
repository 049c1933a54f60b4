// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// Sampler computes the content hash of a sampler descriptor (§3.1,
// §4.1, §8 scenario 1/2). Samplers have no dependencies, so deps is
// unused but kept for signature uniformity across kinds.
func Sampler(d *resource.SamplerDesc, _ Dependencies) (resource.Hash, error) {
	w := newCanonWriter(samplerDomain)
	w.WriteUint8(uint8(d.MagFilter))
	w.WriteUint8(uint8(d.MinFilter))
	w.WriteUint8(uint8(d.MipmapMode))
	w.WriteUint8(uint8(d.AddressModeU))
	w.WriteUint8(uint8(d.AddressModeV))
	w.WriteUint8(uint8(d.AddressModeW))
	w.WriteFloat32(d.MipLodBias)
	w.WriteBool(d.AnisotropyEnable)
	if d.AnisotropyEnable {
		w.WriteFloat32(d.MaxAnisotropy)
	}
	w.WriteBool(d.CompareEnable)
	if d.CompareEnable {
		w.WriteUint8(uint8(d.CompareOp))
	}
	w.WriteFloat32(d.MinLod)
	w.WriteFloat32(d.MaxLod)
	w.WriteUint8(uint8(d.BorderColor))
	w.WriteBool(d.UnnormalizedCoordinates)

	// §3.1: a chain carrying both YCbCr conversion and reduction mode
	// is rejected outright even though each is individually
	// recognized — the deliberate extension-chain failure path (§8
	// scenario 2).
	w.WriteExtensions(d.Extensions, func(byType map[resource.ExtensionType]resource.Extension) error {
		_, hasYcbcr := byType[resource.ExtensionSamplerYcbcrConversion]
		_, hasReduction := byType[resource.ExtensionSamplerReductionMode]
		if hasYcbcr && hasReduction {
			return ErrUnsupportedExtension
		}
		return nil
	})

	return w.Sum()
}

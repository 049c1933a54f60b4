// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// ApplicationInfo computes the content hash of the singleton
// application metadata record (§3.1, §4.1).
func ApplicationInfo(d *resource.ApplicationInfoDesc, _ Dependencies) (resource.Hash, error) {
	w := newCanonWriter(applicationInfoDomain)
	w.WriteBytes([]byte(d.ApplicationName))
	w.WriteBytes([]byte(d.EngineName))
	w.WriteUint32(d.ApplicationVersion)
	w.WriteUint32(d.EngineVersion)
	w.WriteUint32(d.APIVersion)
	return w.Sum()
}

// PhysicalDeviceFeatures computes the content hash of the singleton
// device feature set (§3.1, §4.1).
func PhysicalDeviceFeatures(d *resource.PhysicalDeviceFeaturesDesc, _ Dependencies) (resource.Hash, error) {
	w := newCanonWriter(physicalDeviceFeaturesDomain)
	w.WriteBool(d.RobustBufferAccess)
	w.WriteBool(d.FullDrawIndexUint32)
	w.WriteBool(d.ImageCubeArray)
	w.WriteBool(d.IndependentBlend)
	w.WriteBool(d.GeometryShader)
	w.WriteBool(d.TessellationShader)
	w.WriteBool(d.SampleRateShading)
	w.WriteBool(d.DualSrcBlend)
	w.WriteBool(d.MultiDrawIndirect)
	w.WriteBool(d.DepthClamp)
	w.WriteBool(d.DepthBiasClamp)
	w.WriteBool(d.FillModeNonSolid)
	w.WriteBool(d.WideLines)
	w.WriteBool(d.LargePoints)
	w.WriteBool(d.MultiViewport)
	w.WriteBool(d.SamplerAnisotropy)
	w.WriteExtensions(d.Extensions, nil)
	return w.Sum()
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"github.com/ibriano/Fossilize/internal/resource"
)

// ShaderModule computes the content hash of a shader module's raw
// code bytes (§3.1, §4.1).
func ShaderModule(d *resource.ShaderModuleDesc, _ Dependencies) (resource.Hash, error) {
	w := newCanonWriter(shaderModuleDomain)
	w.WriteBytes(d.Code)
	return w.Sum()
}

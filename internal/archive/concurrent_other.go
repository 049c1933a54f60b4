// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package archive

import (
	"errors"
	"fmt"
	"os"
)

// probeCreate attempts to exclusively create path using the portable
// os.O_CREATE|os.O_EXCL flag combination (§4.5/§9).
func probeCreate(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, os.ErrExist
		}
		return nil, fmt.Errorf("archive: creating bucket %s: %w", path, err)
	}
	return f, nil
}

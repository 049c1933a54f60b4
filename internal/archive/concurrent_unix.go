// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package archive

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// probeCreate attempts to exclusively create path, the monotonic
// bucket-file probe of §4.5/§9. golang.org/x/sys/unix gives direct
// control of O_CREAT|O_EXCL the way raw syscall control is used
// elsewhere in the pack; os.OpenFile with the same flag bits (see
// concurrent_other.go) is an equally correct, merely less direct,
// fallback on non-unix platforms.
func probeCreate(path string) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL, 0o644)
	if err != nil {
		if err == unix.EEXIST {
			return nil, os.ErrExist
		}
		return nil, fmt.Errorf("archive: creating bucket %s: %w", path, err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

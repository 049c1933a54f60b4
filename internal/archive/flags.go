// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

// WriteFlags controls how WriteEntry stores a payload (§4.4
// "Write flags").
type WriteFlags uint32

const (
	// Compress stores the payload deflate-compressed.
	Compress WriteFlags = 1 << iota

	// ComputeChecksum computes and stores a CRC32 of the stored
	// (possibly compressed) bytes; readers verify it.
	ComputeChecksum

	// RawFossilizeDB means payload is already in final on-disk form:
	// write it verbatim, without re-compressing or re-checksumming.
	// Used by the merge path to copy records between archives.
	RawFossilizeDB
)

// ReadFlags controls how ReadEntry returns a stored payload (§4.4
// "Read flags").
type ReadFlags uint32

const (
	// ReadRawFossilizeDB returns the stored bytes untouched, whatever
	// their on-disk encoding, instead of decompressing them.
	ReadRawFossilizeDB ReadFlags = 1 << iota
)

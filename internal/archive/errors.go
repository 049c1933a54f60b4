// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import "errors"

// Error kinds the archive distinguishes (§7): Structural errors are
// the recorder's concern, not this package's; these are Storage and
// Programmer-error kinds.
var (
	// ErrNotFound is returned by ReadEntry/ReadRaw when (kind, hash)
	// is not present in the archive.
	ErrNotFound = errors.New("archive: entry not found")

	// ErrChecksumMismatch is returned when a stored record's CRC32
	// does not match its payload bytes.
	ErrChecksumMismatch = errors.New("archive: checksum mismatch")

	// ErrTruncated names the case of a trailing record whose header or
	// payload runs past the end of the file (§4.4 "Malformed trailing
	// records ... truncate the scan; prior records remain readable").
	// No function in this package returns it: Open's scan stops at such
	// a record and only logs a warning.
	ErrTruncated = errors.New("archive: truncated record")

	// ErrUnsupportedVersion is returned when the file's magic header
	// names a format version this package does not know how to read.
	ErrUnsupportedVersion = errors.New("archive: unsupported archive version")

	// ErrReadOnly is returned by WriteEntry/WriteRaw when the archive
	// was opened in ReadOnly mode (§7 "Programmer error").
	ErrReadOnly = errors.New("archive: archive is read-only")

	// ErrNotExist is returned by Prepare in ReadOnly mode when the
	// target file does not exist.
	ErrNotExist = errors.New("archive: archive does not exist")
)

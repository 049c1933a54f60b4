// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"fmt"
	"strconv"
)

// Hash is the 64-bit content hash that identifies a recorded object
// within its kind. It is computed by internal/hasher from a
// descriptor's canonical byte form (§4.1) and, per this system's
// handle semantics, also serves as the object's external handle
// (§3 Lifecycle, §9 Design Notes).
type Hash uint64

// String renders the hash as decimal, the form used in the §6 wire
// format so that JSON parsers without 64-bit integer support can
// still round-trip it.
func (h Hash) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// ParseHash parses a decimal string produced by [Hash.String].
func ParseHash(s string) (Hash, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing hash %q: %w", s, err)
	}
	return Hash(v), nil
}

// HandleKind distinguishes the two ways this system's opaque 64-bit
// handles are populated, replacing the source's raw-integer
// reinterpretation of "handle" and "content hash" (§9 Design Notes).
type HandleKind uint8

const (
	// ExternalHandle is a caller-assigned identifier captured at
	// record time, before the content hash is known (e.g. the live
	// driver handle the application used when it made the creation
	// call).
	ExternalHandle HandleKind = iota

	// ContentHashHandle is the content hash of the referenced object,
	// as resolved by the recorder's intern table or delivered by the
	// replayer.
	ContentHashHandle
)

// Handle references another recorded object, either by the caller's
// original external handle or by content hash. A zero Handle
// (Kind==ExternalHandle, Value==0) means "no reference" for optional
// fields such as a graphics pipeline's base pipeline.
type Handle struct {
	Kind  HandleKind
	Value uint64
}

// IsZero reports whether h is the "no reference" sentinel.
func (h Handle) IsZero() bool {
	return h.Kind == ExternalHandle && h.Value == 0
}

// AsContentHash returns h as a content hash, asserting that it has
// already been resolved. Callers in the replayer use this once
// dependency substitution (§4.3) has run.
func (h Handle) AsContentHash() Hash {
	return Hash(h.Value)
}

// ContentHash wraps a resolved content hash as a Handle, the form
// descriptors carry once a dependency has been folded (§4.1) or a
// replayed object has been delivered to the sink (§4.3).
func ContentHash(h Hash) Handle {
	return Handle{Kind: ContentHashHandle, Value: uint64(h)}
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package hasher implements the deterministic content-hashing
// contract of §4.1: one pure function per resource kind, mapping a
// descriptor plus its already-interned dependencies to a stable
// 64-bit [resource.Hash].
package hasher

import "errors"

// ErrUnknownReference is returned when a descriptor references
// another object by handle and that handle is not present in the
// Dependencies the caller supplied (§4.1 "Dependency-folding").
var ErrUnknownReference = errors.New("hasher: unknown reference")

// ErrUnsupportedExtension is returned when a descriptor's extension
// chain contains a type this package does not recognize, or a
// recognized combination this package's domain rules forbid (§4.1,
// §3.1, §8 scenario 2). This is a structural error: the recorder must
// reject the whole descriptor, not skip the offending extension.
var ErrUnsupportedExtension = errors.New("hasher: unsupported extension")

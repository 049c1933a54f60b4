// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by the
// archive index cache (internal/wire.IndexCache).
//
// Each archive file gets its own cache file ("<path>.idx") holding that
// archive's record index, keyed by the archive's size and modification
// time, so re-scanning an archive that hasn't changed can be skipped.
// That cache is internal, on-disk, single-node state with no external
// readers, so CBOR trades JSON's readability for a smaller encoding and
// unambiguous byte layout.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes. The cache is decoded
// before use; its fields are compared, not its encoded bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec

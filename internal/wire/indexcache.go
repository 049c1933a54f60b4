// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ibriano/Fossilize/lib/codec"
)

// IndexCacheVersion is bumped whenever the cached index layout
// changes shape. A mismatch is treated as a cache miss, not an error.
const IndexCacheVersion = 1

// IndexEntry is one cached (kind, hash) -> file offset mapping,
// mirroring the in-memory index [internal/archive.StreamArchive]
// builds by scanning (§4.4 "Readers scan from the header to build an
// in-memory index").
type IndexEntry struct {
	Kind   uint8  `cbor:"k"`
	Hash   uint64 `cbor:"h"`
	Offset int64  `cbor:"o"`
}

// IndexCache is the persisted form of an archive's record index,
// stored alongside the archive as "<path>.idx" (§2.1 domain stack:
// "index caching, not the wire format in §6"). It is keyed to the
// exact archive file it was built from by size and modification time;
// any mismatch invalidates the cache and forces a rescan.
type IndexCache struct {
	Version  uint32       `cbor:"v"`
	FileSize int64        `cbor:"sz"`
	ModUnix  int64        `cbor:"mt"`
	Entries  []IndexEntry `cbor:"e"`
}

// SaveIndexCache writes c to path using the CBOR Core Deterministic
// Encoding convention shared with [lib/codec], via a temp-file-then-
// rename so a crash mid-write never leaves a corrupt cache behind.
func SaveIndexCache(path string, c *IndexCache) error {
	data, err := codec.Marshal(c)
	if err != nil {
		return fmt.Errorf("wire: encoding index cache: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "index-*.tmp")
	if err != nil {
		return fmt.Errorf("wire: creating temp index cache: %w", err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("wire: writing temp index cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("wire: closing temp index cache: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("wire: renaming index cache into place: %w", err)
	}
	success = true
	return nil
}

// LoadIndexCache reads and decodes an index cache previously written
// by [SaveIndexCache]. Returns os.ErrNotExist (wrapped) if no cache
// file is present; callers should treat that, and any decode failure,
// as a plain cache miss rather than a fatal error.
func LoadIndexCache(path string) (*IndexCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wire: reading index cache: %w", err)
	}
	var c IndexCache
	if err := codec.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("wire: decoding index cache: %w", err)
	}
	return &c, nil
}

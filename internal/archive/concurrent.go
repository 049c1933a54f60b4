// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ibriano/Fossilize/internal/resource"
)

// ConcurrentArchive is the multi-file bucket scheme of §4.5: many
// writer processes append to their own exclusively-created bucket
// file under a shared base path, and readers see the union of a set
// of read-only shards plus (for a writer instance) its own bucket.
// Not safe for concurrent use from multiple goroutines; the
// concurrency story here is cross-*process*, one ConcurrentArchive
// instance per writer (§5).
type ConcurrentArchive struct {
	basePath string
	shards   []*StreamArchive // consultation order: extra paths, then P.foz
	bucket   *StreamArchive   // nil until the first non-duplicate write
	logger   *slog.Logger

	// instanceTag correlates this writer's log lines across its
	// lifetime (§9 "Global mutable state" — a per-instance UUID
	// replaces the source's process-wide atomic counter).
	instanceTag uuid.UUID
}

// ParseExtraPaths splits a `;`-separated extra-paths string (§4.5
// "Extra-paths encoding"), discarding empty components. Using `;`
// rather than `:` keeps Windows drive-letter paths unambiguous.
func ParseExtraPaths(encoded string) []string {
	if encoded == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(encoded, ";") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OpenConcurrent implements Prepare for the concurrent scheme: it
// opens basePath+".foz" (if present) and every path in extraPaths
// read-only as shards, in the fixed consultation order §4.5
// specifies. No bucket file is created yet (§4.5 "lazily creates the
// bucket file on first real write").
func OpenConcurrent(basePath string, extraPaths []string, logger *slog.Logger) (*ConcurrentArchive, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &ConcurrentArchive{basePath: basePath, logger: logger, instanceTag: uuid.New()}

	for _, p := range extraPaths {
		shard, err := Open(p, ReadOnly, logger)
		if err != nil {
			c.closeShards()
			return nil, fmt.Errorf("archive: opening extra shard %s: %w", p, err)
		}
		c.shards = append(c.shards, shard)
	}

	sharedPath := basePath + ".foz"
	shared, err := Open(sharedPath, ReadOnly, logger)
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			c.closeShards()
			return nil, fmt.Errorf("archive: opening shared shard %s: %w", sharedPath, err)
		}
	} else {
		c.shards = append(c.shards, shared)
	}

	c.logger.Debug("archive: concurrent archive prepared", slog.String("base", basePath), slog.String("writer", c.instanceTag.String()), slog.Int("shards", len(c.shards)))
	return c, nil
}

func (c *ConcurrentArchive) closeShards() {
	for _, s := range c.shards {
		s.Close()
	}
	c.shards = nil
}

// HasEntry consults extra paths, then P.foz, then the writer's own
// bucket; first hit wins (§4.5 "Read semantics").
func (c *ConcurrentArchive) HasEntry(kind resource.Kind, hash resource.Hash) bool {
	for _, s := range c.shards {
		if s.HasEntry(kind, hash) {
			return true
		}
	}
	return c.bucket != nil && c.bucket.HasEntry(kind, hash)
}

// ReadEntry consults shards then the writer's own bucket, in the same
// order as HasEntry, returning the first match.
func (c *ConcurrentArchive) ReadEntry(kind resource.Kind, hash resource.Hash) ([]byte, error) {
	for _, s := range c.shards {
		if s.HasEntry(kind, hash) {
			return s.ReadEntry(kind, hash)
		}
	}
	if c.bucket != nil && c.bucket.HasEntry(kind, hash) {
		return c.bucket.ReadEntry(kind, hash)
	}
	return nil, ErrNotFound
}

// HashList returns the union of hashes for kind across every shard
// and the writer's own bucket, duplicates collapsed (§4.5).
func (c *ConcurrentArchive) HashList(kind resource.Kind) []resource.Hash {
	seen := make(map[resource.Hash]struct{})
	var out []resource.Hash
	add := func(hs []resource.Hash) {
		for _, h := range hs {
			if _, ok := seen[h]; !ok {
				seen[h] = struct{}{}
				out = append(out, h)
			}
		}
	}
	for _, s := range c.shards {
		add(s.HashList(kind))
	}
	if c.bucket != nil {
		add(c.bucket.HashList(kind))
	}
	return out
}

// WriteEntry implements §4.5 "Write semantics": a write is suppressed
// if the entry already exists in any read-only shard or in the
// writer's own bucket, otherwise the bucket is created on demand (if
// this is its first real write) and the entry appended.
func (c *ConcurrentArchive) WriteEntry(kind resource.Kind, hash resource.Hash, payload []byte, flags WriteFlags) error {
	for _, s := range c.shards {
		if s.HasEntry(kind, hash) {
			return nil // exists elsewhere; suppressed
		}
	}
	if c.bucket != nil && c.bucket.HasEntry(kind, hash) {
		return nil // already in this writer's bucket; suppressed
	}

	if err := c.ensureBucket(); err != nil {
		return err
	}
	return c.bucket.WriteEntry(kind, hash, payload, flags)
}

// ensureBucket lazily creates this writer's bucket file the first
// time a real (non-suppressed) write happens, probing P.<N>.foz for
// the lowest N that does not yet exist via an exclusive create
// (§4.5 "Bucket file"; §9 replaces the source's global atomic counter
// with this per-instance allocation, tagged for logging by
// instanceTag rather than relied on for correctness).
func (c *ConcurrentArchive) ensureBucket() error {
	if c.bucket != nil {
		return nil
	}
	for n := 1; ; n++ {
		path := fmt.Sprintf("%s.%d.foz", c.basePath, n)
		file, err := probeCreate(path)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return fmt.Errorf("archive: allocating bucket: %w", err)
		}
		bucket, err := newStreamArchive(path, file, Append, c.logger)
		if err != nil {
			return err
		}
		c.bucket = bucket
		c.logger.Debug("archive: bucket allocated", slog.String("path", path), slog.String("writer", c.instanceTag.String()))
		return nil
	}
}

// Close releases every shard's and the bucket's file descriptor.
func (c *ConcurrentArchive) Close() error {
	var firstErr error
	for _, s := range c.shards {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.bucket != nil {
		if err := c.bucket.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

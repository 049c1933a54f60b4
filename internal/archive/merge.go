// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ibriano/Fossilize/internal/resource"
)

// MergeBuckets implements §4.6: it reconciles a set of bucket archives
// (in the given order) into one destination single-file archive,
// copying each distinct (kind, hash) exactly once, first occurrence
// across sources wins, and carrying stored bytes across verbatim
// (never decompressing and recompressing). The `merge` subcommand of
// cmd/fossilize-tool runs it.
//
// ctx is checked between sources only, for coarse cancellation; a
// merge already copying a source's records runs it to completion.
func MergeBuckets(ctx context.Context, destPath string, sourcePaths []string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	dest, err := Open(destPath, OverWrite, logger)
	if err != nil {
		return fmt.Errorf("archive: merge: opening destination %s: %w", destPath, err)
	}
	defer dest.Close()

	seen := make(map[entryKey]struct{})

	for _, path := range sourcePaths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("archive: merge: %w", err)
		}

		src, err := Open(path, ReadOnly, logger)
		if err != nil {
			return fmt.Errorf("archive: merge: opening source %s: %w", path, err)
		}

		copied := 0
		for _, kind := range resource.Kinds {
			for _, hash := range src.HashList(kind) {
				key := entryKey{kind: kind, hash: hash}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				stored, rec, err := src.ReadRaw(kind, hash)
				if err != nil {
					src.Close()
					return fmt.Errorf("archive: merge: reading (%s, %d) from %s: %w", kind, hash, path, err)
				}
				if err := dest.WriteRaw(kind, hash, rec, stored); err != nil {
					src.Close()
					return fmt.Errorf("archive: merge: writing (%s, %d) into %s: %w", kind, hash, destPath, err)
				}
				copied++
			}
		}

		src.Close()
		logger.Debug("archive: merge: copied source", slog.String("path", path), slog.Int("copied", copied))
	}

	return nil
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/ibriano/Fossilize/internal/archive"
)

// runMerge implements the `merge` subcommand: reconcile a set of
// per-writer bucket files into a single shared archive (§4.6).
func runMerge(logger *slog.Logger, args []string) error {
	flagSet := pflag.NewFlagSet("merge", pflag.ContinueOnError)
	destPath := flagSet.String("dest", "", "path of the merged archive to produce")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	sources := flagSet.Args()
	if *destPath == "" || len(sources) == 0 {
		return fmt.Errorf("merge: --dest and at least one source bucket path are required")
	}

	if err := archive.MergeBuckets(context.Background(), *destPath, sources, logger); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	logger.Info("merge: reconciled buckets", slog.Int("sources", len(sources)), slog.String("dest", *destPath))
	return nil
}

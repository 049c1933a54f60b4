// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ibriano/Fossilize/internal/archive"
	"github.com/ibriano/Fossilize/internal/resource"
)

const testFixtureYAML = `
applicationName: demo-app
engineName: demo-engine
samplers:
  - name: linear
    magFilter: 1
    minFilter: 1
    addressModeU: 0
    maxAnisotropy: 4
descriptorSetLayouts:
  - name: material
    bindings:
      - binding: 0
        descriptorType: 1
        descriptorCount: 1
        stageFlags: 1
        immutableSamplers: [linear]
shaderModules:
  - name: frag
    code: [1, 2, 3, 4]
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRecordThenReplayRoundTrips(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.yaml")
	if err := os.WriteFile(fixturePath, []byte(testFixtureYAML), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	dbPath := filepath.Join(dir, "capture.foz")
	capturePath := filepath.Join(dir, "capture.json")
	logger := discardLogger()

	err := runRecord(logger, []string{
		"--fixture", fixturePath,
		"--db", dbPath,
		"--capture", capturePath,
	})
	if err != nil {
		t.Fatalf("runRecord: %v", err)
	}

	db, err := archive.Open(dbPath, archive.ReadOnly, logger)
	if err != nil {
		t.Fatalf("opening recorded archive: %v", err)
	}
	defer db.Close()

	if len(db.HashList(resource.KindSampler)) != 1 {
		t.Errorf("expected exactly one recorded sampler")
	}
	if len(db.HashList(resource.KindDescriptorSetLayout)) != 1 {
		t.Errorf("expected exactly one recorded descriptor set layout")
	}
	if len(db.HashList(resource.KindShaderModule)) != 1 {
		t.Errorf("expected exactly one recorded shader module")
	}

	if err := runReplay(logger, []string{"--capture", capturePath}); err != nil {
		t.Fatalf("runReplay: %v", err)
	}
}

func TestRecordRejectsMissingFlags(t *testing.T) {
	if err := runRecord(discardLogger(), nil); err == nil {
		t.Fatalf("expected an error when --fixture/--db are missing")
	}
}

func TestMergeReconcilesBuckets(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "P")
	logger := discardLogger()

	a, err := archive.OpenConcurrent(base, nil, logger)
	if err != nil {
		t.Fatalf("OpenConcurrent: %v", err)
	}
	if err := a.WriteEntry(resource.KindSampler, 7, []byte{7}, 0); err != nil {
		t.Fatalf("WriteEntry: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	destPath := filepath.Join(dir, "merged.foz")
	if err := runMerge(logger, []string{"--dest", destPath, base + ".1.foz"}); err != nil {
		t.Fatalf("runMerge: %v", err)
	}

	merged, err := archive.Open(destPath, archive.ReadOnly, logger)
	if err != nil {
		t.Fatalf("opening merged archive: %v", err)
	}
	defer merged.Close()

	if !merged.HasEntry(resource.KindSampler, 7) {
		t.Errorf("expected merged archive to contain the sampler written by the source bucket")
	}
}

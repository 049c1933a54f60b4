// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ibriano/Fossilize/internal/resource"
)

func TestMergeBucketsReconcilesIntoSingleArchive(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "P")

	a, err := OpenConcurrent(base, nil, nil)
	if err != nil {
		t.Fatalf("writer A prepare: %v", err)
	}
	mustWrite(t, a, resource.KindSampler, 2)
	mustWrite(t, a, resource.KindSampler, 3)
	if err := a.Close(); err != nil {
		t.Fatalf("writer A close: %v", err)
	}

	b, err := OpenConcurrent(base, nil, nil)
	if err != nil {
		t.Fatalf("writer B prepare: %v", err)
	}
	mustWrite(t, b, resource.KindSampler, 3)
	mustWrite(t, b, resource.KindSampler, 4)
	if err := b.Close(); err != nil {
		t.Fatalf("writer B close: %v", err)
	}

	c, err := OpenConcurrent(base, nil, nil)
	if err != nil {
		t.Fatalf("writer C prepare: %v", err)
	}
	mustWrite(t, c, resource.KindSampler, 1)
	mustWrite(t, c, resource.KindSampler, 1)
	if err := c.Close(); err != nil {
		t.Fatalf("writer C close: %v", err)
	}

	sources := []string{base + ".1.foz", base + ".2.foz", base + ".3.foz"}
	for _, p := range sources {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected bucket %s to exist: %v", p, err)
		}
	}

	destPath := base + ".foz"
	if err := MergeBuckets(context.Background(), destPath, sources, nil); err != nil {
		t.Fatalf("MergeBuckets: %v", err)
	}

	merged, err := Open(destPath, ReadOnly, nil)
	if err != nil {
		t.Fatalf("opening merged archive: %v", err)
	}
	defer merged.Close()

	got := merged.HashList(resource.KindSampler)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []resource.Hash{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("hash list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hash list = %v, want %v", got, want)
		}
		if _, err := merged.ReadEntry(resource.KindSampler, want[i]); err != nil {
			t.Fatalf("reading merged entry %d: %v", want[i], err)
		}
	}

	d, err := OpenConcurrent(base, nil, nil)
	if err != nil {
		t.Fatalf("writer D prepare: %v", err)
	}
	defer d.Close()

	mustWrite(t, d, resource.KindSampler, 3)
	if _, err := os.Stat(base + ".4.foz"); err == nil {
		t.Fatalf("writing an entry already present in P.foz must not create a new bucket")
	}
}

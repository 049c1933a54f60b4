// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ibriano/Fossilize/internal/resource"
)

func bucketExists(t *testing.T, base string, n int) bool {
	t.Helper()
	_, err := os.Stat(fmt.Sprintf("%s.%d.foz", base, n))
	return err == nil
}

func TestConcurrentBucketAllocationAndSuppression(t *testing.T) {
	base := filepath.Join(t.TempDir(), "P")

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

	for _, n := range []int{1, 2, 3} {
		if !bucketExists(t, base, n) {
			t.Fatalf("expected bucket P.%d.foz to exist", n)
		}
	}

	extras := []string{base + ".1.foz", base + ".2.foz", base + ".3.foz"}
	d, err := OpenConcurrent(base, extras, nil)
	if err != nil {
		t.Fatalf("writer D prepare: %v", err)
	}
	defer d.Close()

	got := d.HashList(resource.KindSampler)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []resource.Hash{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("hash list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hash list = %v, want %v", got, want)
		}
	}

	mustWrite(t, d, resource.KindSampler, 4)
	if bucketExists(t, base, 4) {
		t.Fatalf("bucket P.4.foz must not appear after a duplicate-only write")
	}

	mustWrite(t, d, resource.KindDescriptorSetLayout, 4)
	if !bucketExists(t, base, 4) {
		t.Fatalf("bucket P.4.foz must appear after a real write")
	}
}

func mustWrite(t *testing.T, a *ConcurrentArchive, kind resource.Kind, hash resource.Hash) {
	t.Helper()
	if err := a.WriteEntry(kind, hash, []byte{byte(hash)}, 0); err != nil {
		t.Fatalf("writing (%v, %d): %v", kind, hash, err)
	}
}

// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ibriano/Fossilize/internal/resource"
)

func TestArchiveRoundTripWithCompressionAndChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.foz")

	a, err := Open(path, OverWrite, nil)
	if err != nil {
		t.Fatalf("opening for overwrite: %v", err)
	}
	if err := a.WriteEntry(resource.KindSampler, 1, []byte{1, 2, 3}, Compress|ComputeChecksum); err != nil {
		t.Fatalf("writing sampler entry: %v", err)
	}
	if err := a.WriteEntry(resource.KindDescriptorSetLayout, 2, []byte{10, 20, 30, 40, 50}, Compress|ComputeChecksum); err != nil {
		t.Fatalf("writing dsl entry: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	a, err = Open(path, Append, nil)
	if err != nil {
		t.Fatalf("reopening for append: %v", err)
	}
	if !a.HasEntry(resource.KindSampler, 1) {
		t.Fatalf("missing sampler entry after reopen")
	}
	if !a.HasEntry(resource.KindDescriptorSetLayout, 2) {
		t.Fatalf("missing dsl entry after reopen")
	}
	if a.HasEntry(resource.KindShaderModule, 3) {
		t.Fatalf("shader module entry present before it was written")
	}
	if err := a.WriteEntry(resource.KindShaderModule, 3, []byte{1, 2, 3, 1, 2, 3}, ComputeChecksum); err != nil {
		t.Fatalf("appending shader module entry: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("closing after append: %v", err)
	}

	for i := 0; i < 2; i++ {
		ro, err := Open(path, ReadOnly, nil)
		if err != nil {
			t.Fatalf("iteration %d: opening read-only: %v", i, err)
		}
		got, err := ro.ReadEntry(resource.KindSampler, 1)
		if err != nil || !bytes.Equal(got, []byte{1, 2, 3}) {
			t.Fatalf("iteration %d: sampler payload mismatch: %v, %v", i, got, err)
		}
		got, err = ro.ReadEntry(resource.KindDescriptorSetLayout, 2)
		if err != nil || !bytes.Equal(got, []byte{10, 20, 30, 40, 50}) {
			t.Fatalf("iteration %d: dsl payload mismatch: %v, %v", i, got, err)
		}
		got, err = ro.ReadEntry(resource.KindShaderModule, 3)
		if err != nil || !bytes.Equal(got, []byte{1, 2, 3, 1, 2, 3}) {
			t.Fatalf("iteration %d: shader module payload mismatch: %v, %v", i, got, err)
		}
		if err := ro.Close(); err != nil {
			t.Fatalf("iteration %d: closing read-only: %v", i, err)
		}
	}
}

func TestArchiveReadOnlyMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.foz")
	if _, err := Open(path, ReadOnly, nil); err == nil {
		t.Fatalf("expected an error opening a missing read-only archive")
	}
}

func TestArchiveWriteEntryRejectedOnReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.foz")
	a, err := Open(path, OverWrite, nil)
	if err != nil {
		t.Fatalf("opening for overwrite: %v", err)
	}
	if err := a.WriteEntry(resource.KindSampler, 1, []byte{1}, 0); err != nil {
		t.Fatalf("writing entry: %v", err)
	}
	a.Close()

	ro, err := Open(path, ReadOnly, nil)
	if err != nil {
		t.Fatalf("opening read-only: %v", err)
	}
	defer ro.Close()
	if err := ro.WriteEntry(resource.KindSampler, 2, []byte{2}, 0); err != ErrReadOnly {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestRawBlobCopyYieldsOriginalBytes(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "source.foz")
	src, err := Open(srcPath, OverWrite, nil)
	if err != nil {
		t.Fatalf("opening source: %v", err)
	}
	if err := src.WriteEntry(resource.KindSampler, 7, []byte{9, 9, 9}, Compress|ComputeChecksum); err != nil {
		t.Fatalf("writing source entry: %v", err)
	}
	src.Close()

	src, err = Open(srcPath, ReadOnly, nil)
	if err != nil {
		t.Fatalf("reopening source read-only: %v", err)
	}
	defer src.Close()

	destPath := filepath.Join(t.TempDir(), "dest.foz")
	dest, err := Open(destPath, OverWrite, nil)
	if err != nil {
		t.Fatalf("opening destination: %v", err)
	}
	defer dest.Close()

	for _, h := range src.HashList(resource.KindSampler) {
		stored, rec, err := src.ReadRaw(resource.KindSampler, h)
		if err != nil {
			t.Fatalf("reading raw: %v", err)
		}
		if err := dest.WriteRaw(resource.KindSampler, h, rec, stored); err != nil {
			t.Fatalf("writing raw: %v", err)
		}
	}

	got, err := dest.ReadEntry(resource.KindSampler, 7)
	if err != nil || !bytes.Equal(got, []byte{9, 9, 9}) {
		t.Fatalf("destination payload mismatch: %v, %v", got, err)
	}
}

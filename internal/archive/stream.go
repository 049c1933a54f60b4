// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive implements the content-addressed blob store of
// §4.4-§4.6: a single-file stream archive, a concurrent multi-file
// bucket scheme built on top of it, and a merger that reconciles
// buckets into one shared archive.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/klauspost/compress/flate"

	"github.com/ibriano/Fossilize/internal/resource"
	"github.com/ibriano/Fossilize/internal/wire"
)

// Mode selects how Open treats the target file (§4.4 "Modes").
type Mode int

const (
	// OverWrite truncates any existing file and starts empty.
	OverWrite Mode = iota
	// Append opens an existing archive for further writes, or
	// creates one if absent.
	Append
	// ReadOnly fails if the file is absent; no writes are permitted.
	ReadOnly
)

type entryKey struct {
	kind resource.Kind
	hash resource.Hash
}

// entryMeta is everything needed to read a stored record back out
// without re-scanning the file: the payload's byte offset plus the
// fixed header fields that travel with it.
type entryMeta struct {
	payloadOffset    int64
	storedSize       uint32
	uncompressedSize uint32
	flags            uint32
	crc32            uint32
}

// RawRecord is a record's on-disk metadata, exposed so the merge path
// can copy stored bytes between archives verbatim (§4.6, glossary
// "Raw blob") without knowing whether they are compressed.
type RawRecord struct {
	Flags            WriteFlags
	StoredSize       uint32
	UncompressedSize uint32
	CRC32            uint32
}

// StreamArchive is the single-file archive of §4.4: an append-only
// sequence of fixed-header records behind an in-memory index built at
// Open (Prepare). Not safe for concurrent use from multiple
// goroutines without external synchronization — callers that need
// concurrent writers use [ConcurrentArchive] instead.
type StreamArchive struct {
	path    string
	mode    Mode
	file    *os.File
	index   map[entryKey]entryMeta
	writeAt int64
	logger  *slog.Logger
}

// Open implements Prepare for the single-file archive: it opens (or
// creates, or truncates) path per mode, then scans existing records
// into an in-memory index, consulting a cached index
// (<path>.idx, §2.1 domain stack) when one is present and still valid
// for the file's current size and modification time.
func Open(path string, mode Mode, logger *slog.Logger) (*StreamArchive, error) {
	var file *os.File
	var err error
	switch mode {
	case OverWrite:
		file, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	case Append:
		file, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	case ReadOnly:
		file, err = os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotExist)
		}
	default:
		return nil, fmt.Errorf("archive: unknown mode %d", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: opening %s: %w", path, err)
	}
	return newStreamArchive(path, file, mode, logger)
}

// newStreamArchive wraps an already-opened file descriptor, scanning
// it (or initializing a fresh magic header, if empty) regardless of
// how the caller obtained the descriptor. Used both by Open and by
// ConcurrentArchive's exclusive bucket-creation probe, which needs
// the descriptor it just won the O_EXCL race on, not a fresh open.
func newStreamArchive(path string, file *os.File, mode Mode, logger *slog.Logger) (*StreamArchive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &StreamArchive{path: path, mode: mode, file: file, index: make(map[entryKey]entryMeta), logger: logger}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("archive: statting %s: %w", path, err)
	}

	if info.Size() == 0 {
		if err := writeMagic(io.NewOffsetWriter(file, 0)); err != nil {
			file.Close()
			return nil, err
		}
		a.writeAt = headerSize
		return a, nil
	}

	if err := a.loadIndex(info); err != nil {
		file.Close()
		return nil, err
	}
	return a, nil
}

// indexCachePath is where Open persists the scanned index so a later
// Open of the same (unchanged) file can skip the scan.
func (a *StreamArchive) indexCachePath() string { return a.path + ".idx" }

func (a *StreamArchive) loadIndex(info os.FileInfo) error {
	if cache, err := wire.LoadIndexCache(a.indexCachePath()); err == nil {
		if cache.FileSize == info.Size() && cache.ModUnix == info.ModTime().Unix() && cache.Version == wire.IndexCacheVersion {
			if err := a.loadIndexFromCache(cache); err == nil {
				a.logger.Debug("archive: loaded cached index", slog.String("path", a.path), slog.Int("entries", len(cache.Entries)))
				return nil
			}
		}
	}
	return a.scan(info)
}

// loadIndexFromCache re-derives entryMeta for each cached offset by
// re-reading just that record's fixed header (cheap: no payload
// bytes touched), avoiding the sequential walk scan performs.
func (a *StreamArchive) loadIndexFromCache(cache *wire.IndexCache) error {
	entries := make(map[entryKey]entryMeta, len(cache.Entries))
	for _, e := range cache.Entries {
		hdr, err := a.readHeaderAt(e.Offset)
		if err != nil {
			return err
		}
		kind := resource.Kind(e.Kind)
		if hdr.kind != uint32(kind) || hdr.hash != e.Hash {
			return fmt.Errorf("archive: index cache does not match file contents")
		}
		entries[entryKey{kind: kind, hash: resource.Hash(e.Hash)}] = entryMeta{
			payloadOffset:    e.Offset + recordHeaderSize,
			storedSize:       hdr.storedSize,
			uncompressedSize: hdr.uncompressedSize,
			flags:            hdr.flags,
			crc32:            hdr.crc32,
		}
	}
	a.index = entries
	a.writeAt = int64(cache.FileSize)
	return nil
}

func (a *StreamArchive) readHeaderAt(offset int64) (recordHeader, error) {
	buf := make([]byte, recordHeaderSize)
	if _, err := a.file.ReadAt(buf, offset); err != nil {
		return recordHeader{}, fmt.Errorf("archive: reading record header at %d: %w", offset, err)
	}
	return decodeRecordHeader(buf), nil
}

// scan rebuilds the index by walking every record from the header
// onward. A malformed trailing record (incomplete header or payload,
// e.g. from a crashed writer) stops the scan; prior records remain
// readable (§4.4).
func (a *StreamArchive) scan(info os.FileInfo) error {
	size := info.Size()

	magicBuf := make([]byte, headerSize)
	if _, err := a.file.ReadAt(magicBuf, 0); err != nil {
		return fmt.Errorf("archive: reading magic header: %w", err)
	}
	if err := checkMagic(magicBuf); err != nil {
		return err
	}

	pos := int64(headerSize)
	index := make(map[entryKey]entryMeta)
	var cacheEntries []wire.IndexEntry

	for pos < size {
		if pos+recordHeaderSize > size {
			a.logger.Warn("archive: truncated trailing record header", slog.String("path", a.path), slog.Int64("offset", pos))
			break
		}
		hdr, err := a.readHeaderAt(pos)
		if err != nil {
			a.logger.Warn("archive: failed reading record header", slog.String("path", a.path), slog.Int64("offset", pos), slog.Any("error", err))
			break
		}
		payloadOffset := pos + recordHeaderSize
		if payloadOffset+int64(hdr.storedSize) > size {
			a.logger.Warn("archive: truncated trailing record payload", slog.String("path", a.path), slog.Int64("offset", pos))
			break
		}

		key := entryKey{kind: resource.Kind(hdr.kind), hash: resource.Hash(hdr.hash)}
		index[key] = entryMeta{
			payloadOffset:    payloadOffset,
			storedSize:       hdr.storedSize,
			uncompressedSize: hdr.uncompressedSize,
			flags:            hdr.flags,
			crc32:            hdr.crc32,
		}
		cacheEntries = append(cacheEntries, wire.IndexEntry{Kind: hdr.kind8(), Hash: hdr.hash, Offset: pos})

		pos = payloadOffset + int64(hdr.storedSize)
	}

	a.index = index
	a.writeAt = pos

	cache := &wire.IndexCache{Version: wire.IndexCacheVersion, FileSize: pos, ModUnix: info.ModTime().Unix(), Entries: cacheEntries}
	if err := wire.SaveIndexCache(a.indexCachePath(), cache); err != nil {
		a.logger.Debug("archive: failed to persist index cache", slog.Any("error", err))
	}
	return nil
}

func checkMagic(buf []byte) error {
	if buf[0] != archiveMagic[0] || buf[1] != archiveMagic[1] || buf[2] != archiveMagic[2] ||
		buf[3] != archiveMagic[3] || buf[4] != archiveMagic[4] || buf[5] != archiveMagic[5] {
		return fmt.Errorf("archive: not a fossilize archive")
	}
	if buf[6] != archiveVersion {
		return fmt.Errorf("%w: got version %d, want %d", ErrUnsupportedVersion, buf[6], archiveVersion)
	}
	return nil
}

// HasEntry reports whether (kind, hash) is present.
func (a *StreamArchive) HasEntry(kind resource.Kind, hash resource.Hash) bool {
	_, ok := a.index[entryKey{kind: kind, hash: hash}]
	return ok
}

// HashList returns every hash recorded under kind. Order is
// unspecified (§3 "Ordering is not significant").
func (a *StreamArchive) HashList(kind resource.Kind) []resource.Hash {
	var out []resource.Hash
	for k := range a.index {
		if k.kind == kind {
			out = append(out, k.hash)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WriteEntry stores payload under (kind, hash) with the given flags
// (§4.4 "Write flags"). RawFossilizeDB is rejected here; verbatim
// copies go through WriteRaw, which carries the original record
// metadata instead of recomputing it.
func (a *StreamArchive) WriteEntry(kind resource.Kind, hash resource.Hash, payload []byte, flags WriteFlags) error {
	if a.mode == ReadOnly {
		return ErrReadOnly
	}
	if flags&RawFossilizeDB != 0 {
		return fmt.Errorf("archive: WriteEntry does not accept RawFossilizeDB; use WriteRaw")
	}

	stored := payload
	if flags&Compress != 0 {
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("archive: initializing deflate writer: %w", err)
		}
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("archive: compressing payload: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("archive: flushing deflate writer: %w", err)
		}
		stored = buf.Bytes()
	}

	var crc uint32
	if flags&ComputeChecksum != 0 {
		crc = checksum(stored)
	}

	return a.appendRecord(kind, hash, stored, uint32(len(payload)), uint32(flags), crc)
}

// WriteRaw appends storedBytes verbatim under (kind, hash), preserving
// rec's original flags/sizes/checksum exactly as read from another
// archive (§4.6 "copy the raw stored bytes using RAW_FOSSILIZE_DB
// flags"). rec.Flags are stored unchanged; the RawFossilizeDB bit is
// not added to them.
func (a *StreamArchive) WriteRaw(kind resource.Kind, hash resource.Hash, rec RawRecord, storedBytes []byte) error {
	if a.mode == ReadOnly {
		return ErrReadOnly
	}
	return a.appendRecord(kind, hash, storedBytes, rec.UncompressedSize, uint32(rec.Flags), rec.CRC32)
}

func (a *StreamArchive) appendRecord(kind resource.Kind, hash resource.Hash, stored []byte, uncompressedSize, flags, crc uint32) error {
	hdr := recordHeader{
		kind:             uint32(kind),
		hash:             uint64(hash),
		storedSize:       uint32(len(stored)),
		uncompressedSize: uncompressedSize,
		flags:            flags,
		crc32:            crc,
	}

	var buf bytes.Buffer
	if err := writeRecordHeader(&buf, hdr); err != nil {
		return err
	}
	buf.Write(stored)

	if _, err := a.file.WriteAt(buf.Bytes(), a.writeAt); err != nil {
		return fmt.Errorf("archive: writing record: %w", err)
	}

	key := entryKey{kind: kind, hash: hash}
	a.index[key] = entryMeta{
		payloadOffset:    a.writeAt + recordHeaderSize,
		storedSize:       hdr.storedSize,
		uncompressedSize: hdr.uncompressedSize,
		flags:            hdr.flags,
		crc32:            hdr.crc32,
	}
	a.writeAt += int64(recordHeaderSize) + int64(len(stored))
	return nil
}

// ReadEntry returns the decoded payload bytes for (kind, hash),
// decompressing and checksum-verifying as the stored flags indicate
// (§4.4 Go-idiom note: this replaces the two-call size-probe ABI with
// a single exactly-sized return).
func (a *StreamArchive) ReadEntry(kind resource.Kind, hash resource.Hash) ([]byte, error) {
	meta, ok := a.index[entryKey{kind: kind, hash: hash}]
	if !ok {
		return nil, ErrNotFound
	}

	stored := make([]byte, meta.storedSize)
	if _, err := a.file.ReadAt(stored, meta.payloadOffset); err != nil {
		return nil, fmt.Errorf("archive: reading payload: %w", err)
	}

	if WriteFlags(meta.flags)&ComputeChecksum != 0 {
		if checksum(stored) != meta.crc32 {
			return nil, ErrChecksumMismatch
		}
	}

	if WriteFlags(meta.flags)&Compress != 0 {
		r := flate.NewReader(bytes.NewReader(stored))
		defer r.Close()
		out := make([]byte, 0, meta.uncompressedSize)
		buf := bytes.NewBuffer(out)
		if _, err := io.Copy(buf, r); err != nil {
			return nil, fmt.Errorf("archive: decompressing payload: %w", err)
		}
		return buf.Bytes(), nil
	}

	return stored, nil
}

// ReadRaw returns the stored bytes for (kind, hash) exactly as they
// sit on disk (compressed or not), plus the metadata needed to copy
// them verbatim into another archive (§4.4 "RAW_FOSSILIZE_DB").
func (a *StreamArchive) ReadRaw(kind resource.Kind, hash resource.Hash) ([]byte, RawRecord, error) {
	meta, ok := a.index[entryKey{kind: kind, hash: hash}]
	if !ok {
		return nil, RawRecord{}, ErrNotFound
	}
	stored := make([]byte, meta.storedSize)
	if _, err := a.file.ReadAt(stored, meta.payloadOffset); err != nil {
		return nil, RawRecord{}, fmt.Errorf("archive: reading raw payload: %w", err)
	}
	rec := RawRecord{
		Flags:            WriteFlags(meta.flags),
		StoredSize:       meta.storedSize,
		UncompressedSize: meta.uncompressedSize,
		CRC32:            meta.crc32,
	}
	return stored, rec, nil
}

// Close releases the archive's file descriptor (§5 "Resource
// release").
func (a *StreamArchive) Close() error {
	return a.file.Close()
}

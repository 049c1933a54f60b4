// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Archive format constants (§4.4 "On-disk form").
const (
	// archiveVersion is the current on-disk format version. Bumped
	// whenever the record header layout changes shape.
	archiveVersion = 1

	// headerSize is the fixed 8-byte magic header: "FOSSIL" + version
	// byte + reserved byte, the same magic+version+reserved shape the
	// teacher's container format uses.
	headerSize = 8

	// recordHeaderSize is the fixed per-record header: kind (4) +
	// hash (8) + storedSize (4) + uncompressedSize (4) + flags (4) +
	// crc32 (4), little-endian (§6 "Little-endian integers; fixed-size
	// record header").
	recordHeaderSize = 28
)

// archiveMagic is the 8-byte archive file signature.
var archiveMagic = [8]byte{'F', 'O', 'S', 'S', 'I', 'L', archiveVersion, 0}

// recordHeader is the fixed-size header preceding every record's
// payload bytes on disk.
type recordHeader struct {
	kind             uint32
	hash             uint64
	storedSize       uint32
	uncompressedSize uint32
	flags            uint32
	crc32            uint32
}

func writeMagic(w io.Writer) error {
	if _, err := w.Write(archiveMagic[:]); err != nil {
		return fmt.Errorf("archive: writing magic header: %w", err)
	}
	return nil
}

func writeRecordHeader(w io.Writer, h recordHeader) error {
	var buf [recordHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.kind)
	binary.LittleEndian.PutUint64(buf[4:12], h.hash)
	binary.LittleEndian.PutUint32(buf[12:16], h.storedSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.uncompressedSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.flags)
	binary.LittleEndian.PutUint32(buf[24:28], h.crc32)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("archive: writing record header: %w", err)
	}
	return nil
}

func checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// decodeRecordHeader decodes a fixed record header already read into
// buf (len(buf) == recordHeaderSize), for call sites that fetched the
// bytes via ReadAt rather than through an io.Reader.
func decodeRecordHeader(buf []byte) recordHeader {
	return recordHeader{
		kind:             binary.LittleEndian.Uint32(buf[0:4]),
		hash:             binary.LittleEndian.Uint64(buf[4:12]),
		storedSize:       binary.LittleEndian.Uint32(buf[12:16]),
		uncompressedSize: binary.LittleEndian.Uint32(buf[16:20]),
		flags:            binary.LittleEndian.Uint32(buf[20:24]),
		crc32:            binary.LittleEndian.Uint32(buf[24:28]),
	}
}

// kind8 narrows the header's kind field to the uint8 width
// [resource.Kind] uses, for the index cache's compact encoding.
func (h recordHeader) kind8() uint8 { return uint8(h.kind) }

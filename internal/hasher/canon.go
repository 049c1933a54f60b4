// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package hasher

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/ibriano/Fossilize/internal/resource"
)

// Dependencies resolves a handle referenced by a descriptor back to
// the content hash of the object it names (§4.1 "Dependency-folding").
// [recorder.Tables] implements this against its live intern tables;
// tests implement it against a plain map.
type Dependencies interface {
	Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool)
}

// domainKey is a 32-byte BLAKE3 keyed-hash key. One key per resource
// kind keeps the hash domains separated the way the teacher's
// lib/artifact/hash.go separates chunk/container/file domains: the
// same canonical byte sequence hashed under two different kinds can
// never collide by construction.
type domainKey [32]byte

func newDomainKey(name string) domainKey {
	var k domainKey
	copy(k[:], name)
	return k
}

var (
	samplerDomain                = newDomainKey("fossilize.sampler")
	descriptorSetLayoutDomain    = newDomainKey("fossilize.descriptor_set_layout")
	pipelineLayoutDomain         = newDomainKey("fossilize.pipeline_layout")
	shaderModuleDomain           = newDomainKey("fossilize.shader_module")
	renderPassDomain             = newDomainKey("fossilize.render_pass")
	computePipelineDomain        = newDomainKey("fossilize.compute_pipeline")
	graphicsPipelineDomain       = newDomainKey("fossilize.graphics_pipeline")
	applicationInfoDomain        = newDomainKey("fossilize.application_info")
	physicalDeviceFeaturesDomain = newDomainKey("fossilize.physical_device_features")
)

// canonWriter accumulates a descriptor's canonical byte form into a
// keyed BLAKE3 hasher and folds it down to a [resource.Hash]. Fields
// are written in struct-declaration order; arrays in array order
// (§4.1 "Canonical ordering"); dependencies as the referenced object's
// own hash, never as a raw handle (§4.1 "Dependency-folding").
type canonWriter struct {
	h   *blake3.Hasher
	err error
}

func newCanonWriter(key domainKey) *canonWriter {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		// key is always exactly 32 bytes; NewKeyed cannot fail here.
		panic("hasher: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &canonWriter{h: h}
}

func (w *canonWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *canonWriter) WriteUint8(v uint8) {
	w.h.Write([]byte{v})
}

func (w *canonWriter) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *canonWriter) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.h.Write(b[:])
}

func (w *canonWriter) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.h.Write(b[:])
}

func (w *canonWriter) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteBytes writes a length-prefixed byte string so that two
// different (length, content) pairs never produce the same stream.
func (w *canonWriter) WriteBytes(b []byte) {
	w.WriteUint64(uint64(len(b)))
	w.h.Write(b)
}

// WriteHash folds a dependency's already-resolved content hash into
// the stream (§4.1 "Dependency-folding").
func (w *canonWriter) WriteHash(h resource.Hash) {
	w.WriteUint64(uint64(h))
}

// ResolveHandle folds the content hash of the object a handle
// references, failing the whole write with ErrUnknownReference if deps
// cannot resolve it. A zero handle (no reference, e.g. an optional
// base pipeline) folds as a single zero byte instead of consulting
// deps.
func (w *canonWriter) ResolveHandle(deps Dependencies, kind resource.Kind, h resource.Handle) {
	if h.IsZero() {
		w.WriteUint8(0)
		return
	}
	resolved, ok := deps.Resolve(kind, h)
	if !ok {
		w.fail(ErrUnknownReference)
		return
	}
	w.WriteUint8(1)
	w.WriteHash(resolved)
}

// WriteExtensions folds a descriptor's recognized extension chain in
// fixed structure-type order (§4.1 "Extension-chain handling"):
// capture-time chain order never affects the hash. validate is called
// once with the full recognized set before folding, so kind-specific
// combination rules (§3.1, §8 scenario 2) can reject before any bytes
// are written.
func (w *canonWriter) WriteExtensions(exts []resource.Extension, validate func(map[resource.ExtensionType]resource.Extension) error) {
	byType := make(map[resource.ExtensionType]resource.Extension, len(exts))
	for _, e := range exts {
		switch e.Type {
		case resource.ExtensionSamplerYcbcrConversion, resource.ExtensionSamplerReductionMode:
			byType[e.Type] = e
		default:
			w.fail(ErrUnsupportedExtension)
			return
		}
	}

	if validate != nil {
		if err := validate(byType); err != nil {
			w.fail(err)
			return
		}
	}

	types := make([]int, 0, len(byType))
	for t := range byType {
		types = append(types, int(t))
	}
	sort.Ints(types)

	w.WriteUint64(uint64(len(types)))
	for _, t := range types {
		ext := byType[resource.ExtensionType(t)]
		w.WriteUint32(uint32(ext.Type))
		w.WriteBytes(ext.Data)
	}
}

// Sum folds the accumulated stream down to the 64-bit hash (§1
// "64-bit content hash"): the low 8 bytes of the 256-bit BLAKE3
// digest, taken little-endian. Truncating a cryptographic digest this
// way is safe for this system's purposes (§4.1 "64-bit hashes are
// treated as unique"; no tie-break on collision is attempted).
func (w *canonWriter) Sum() (resource.Hash, error) {
	if w.err != nil {
		return 0, w.err
	}
	digest := w.h.Sum(nil)
	return resource.Hash(binary.LittleEndian.Uint64(digest[:8])), nil
}

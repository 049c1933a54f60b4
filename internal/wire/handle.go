// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/ibriano/Fossilize/internal/resource"
)

// HandleRecord is the wire form of a [resource.Handle]: a kind tag
// plus a decimal string value (§6 "Hashes and handles are rendered as
// decimal strings of the 64-bit value").
type HandleRecord struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

const (
	handleKindExternal = "external"
	handleKindHash     = "hash"
)

// ToHandleRecord renders a resource handle in wire form.
func ToHandleRecord(h resource.Handle) HandleRecord {
	kind := handleKindExternal
	if h.Kind == resource.ContentHashHandle {
		kind = handleKindHash
	}
	return HandleRecord{Kind: kind, Value: strconv.FormatUint(h.Value, 10)}
}

// FromHandleRecord parses a wire handle record back into a
// [resource.Handle].
func FromHandleRecord(r HandleRecord) (resource.Handle, error) {
	value, err := strconv.ParseUint(r.Value, 10, 64)
	if err != nil {
		return resource.Handle{}, fmt.Errorf("wire: parsing handle value %q: %w", r.Value, err)
	}
	switch r.Kind {
	case handleKindExternal:
		return resource.Handle{Kind: resource.ExternalHandle, Value: value}, nil
	case handleKindHash:
		return resource.Handle{Kind: resource.ContentHashHandle, Value: value}, nil
	default:
		return resource.Handle{}, fmt.Errorf("%w: kind %q", ErrMalformedHandle, r.Kind)
	}
}

// ExtensionRecord is the wire form of a [resource.Extension]: the
// structure-type tag plus base64-encoded payload bytes (§6 "Byte
// blobs ... are base64-encoded").
type ExtensionRecord struct {
	Type uint32 `json:"type"`
	Data string `json:"data"`
}

// ToExtensionRecords renders a chain of extensions in wire form.
func ToExtensionRecords(exts []resource.Extension) []ExtensionRecord {
	if len(exts) == 0 {
		return nil
	}
	out := make([]ExtensionRecord, len(exts))
	for i, e := range exts {
		out[i] = ExtensionRecord{
			Type: uint32(e.Type),
			Data: base64.StdEncoding.EncodeToString(e.Data),
		}
	}
	return out
}

// FromExtensionRecords parses a wire extension chain back into
// [resource.Extension] values. Unrecognized extension types are
// passed through unchanged: rejecting them is the hasher's job
// (§4.1), not the wire decoder's.
func FromExtensionRecords(recs []ExtensionRecord) ([]resource.Extension, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	out := make([]resource.Extension, len(recs))
	for i, r := range recs {
		data, err := base64.StdEncoding.DecodeString(r.Data)
		if err != nil {
			return nil, fmt.Errorf("wire: decoding extension %d payload: %w", i, err)
		}
		out[i] = resource.Extension{Type: resource.ExtensionType(r.Type), Data: data}
	}
	return out, nil
}

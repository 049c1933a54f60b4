// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the textual document exchanged between the
// recorder and the replayer (§6 "Serialized state"): a JSON document
// with one array per resource kind, hashes and handles rendered as
// decimal strings so that parsers without 64-bit integer support can
// still round-trip them.
package wire

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion tags the top-level document (§6 "A top-level object
// keyed by a schema version tag"). Bumped whenever a field is added,
// removed, or reinterpreted in an incompatible way.
const SchemaVersion = "fossilize-1"

// Document is the top-level serialized form of a recorder's interned
// state. Arrays are emitted in ascending hash order within each kind
// so that two recorders holding the same triples always produce
// byte-identical output (§4.2 "Serialization MUST be deterministic").
type Document struct {
	Version                 string                         `json:"version"`
	ApplicationInfo         *ApplicationInfoRecord        `json:"applicationInfo,omitempty"`
	PhysicalDeviceFeatures2 *PhysicalDeviceFeaturesRecord `json:"physicalDeviceFeatures2,omitempty"`
	Samplers                []SamplerRecord               `json:"samplers,omitempty"`
	DescriptorSetLayouts    []DescriptorSetLayoutRecord   `json:"descriptorSetLayouts,omitempty"`
	PipelineLayouts         []PipelineLayoutRecord        `json:"pipelineLayouts,omitempty"`
	ShaderModules           []ShaderModuleRecord          `json:"shaderModules,omitempty"`
	RenderPasses            []RenderPassRecord            `json:"renderPasses,omitempty"`
	ComputePipelines        []ComputePipelineRecord       `json:"computePipelines,omitempty"`
	GraphicsPipelines       []GraphicsPipelineRecord      `json:"graphicsPipelines,omitempty"`
}

// Marshal encodes doc as the canonical compact JSON form.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("wire: marshaling document: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a document previously produced by [Marshal] and
// checks its schema version tag.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("wire: unmarshaling document: %w", err)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("wire: %w: got %q, want %q", ErrUnsupportedVersion, doc.Version, SchemaVersion)
	}
	return &doc, nil
}

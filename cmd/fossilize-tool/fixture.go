// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ibriano/Fossilize/internal/recorder"
	"github.com/ibriano/Fossilize/internal/resource"
)

// fixture is a YAML description of a small set of objects to feed
// through a Recorder, standing in for the driver-intercept layer this
// system's actual capture path depends on (out of scope, §1).
type fixture struct {
	ApplicationName string            `yaml:"applicationName"`
	EngineName      string            `yaml:"engineName"`
	Samplers        []samplerFixture  `yaml:"samplers"`
	DescriptorSets  []dslFixture      `yaml:"descriptorSetLayouts"`
	ShaderModules   []shaderFixture   `yaml:"shaderModules"`
}

type samplerFixture struct {
	Name          string  `yaml:"name"`
	MagFilter     uint8   `yaml:"magFilter"`
	MinFilter     uint8   `yaml:"minFilter"`
	AddressModeU  uint8   `yaml:"addressModeU"`
	MaxAnisotropy float32 `yaml:"maxAnisotropy"`
}

type dslFixture struct {
	Name     string            `yaml:"name"`
	Bindings []bindingFixture  `yaml:"bindings"`
}

type bindingFixture struct {
	Binding           uint32   `yaml:"binding"`
	DescriptorType    uint8    `yaml:"descriptorType"`
	DescriptorCount   uint32   `yaml:"descriptorCount"`
	StageFlags        uint32   `yaml:"stageFlags"`
	ImmutableSamplers []string `yaml:"immutableSamplers"`
}

type shaderFixture struct {
	Name string `yaml:"name"`
	// Code holds small synthetic SPIR-V-shaped bytes; this tool never
	// produces real shader bytecode (§1 Non-goals).
	Code []byte `yaml:"code"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &fx, nil
}

// applyFixture records every object in fx into rec, in dependency
// order (samplers before the descriptor set layouts that reference
// them: the hasher rejects a reference it cannot resolve, §4.1). It
// returns the fixture name each object was recorded under, mapped to
// the content
// hash the recorder assigned, for the caller to report back.
func applyFixture(rec *recorder.Recorder, fx *fixture) (map[string]resource.Hash, error) {
	named := make(map[string]resource.Hash)
	nextHandle := uint64(1)
	externalHandle := func() resource.Handle {
		h := resource.Handle{Kind: resource.ExternalHandle, Value: nextHandle}
		nextHandle++
		return h
	}

	if fx.ApplicationName != "" {
		hash, err := rec.RecordApplicationInfo(resource.ApplicationInfoDesc{
			ApplicationName: fx.ApplicationName,
			EngineName:      fx.EngineName,
		})
		if err != nil {
			return nil, fmt.Errorf("recording application info: %w", err)
		}
		named["$applicationInfo"] = hash
	}

	for _, s := range fx.Samplers {
		hash, err := rec.RecordSampler(externalHandle(), resource.SamplerDesc{
			MagFilter:     resource.Enum8(s.MagFilter),
			MinFilter:     resource.Enum8(s.MinFilter),
			AddressModeU:  resource.Enum8(s.AddressModeU),
			MaxAnisotropy: s.MaxAnisotropy,
			AnisotropyEnable: s.MaxAnisotropy > 0,
		})
		if err != nil {
			return nil, fmt.Errorf("recording sampler %q: %w", s.Name, err)
		}
		named[s.Name] = hash
	}

	for _, d := range fx.DescriptorSets {
		bindings := make([]resource.DescriptorSetLayoutBinding, len(d.Bindings))
		for i, b := range d.Bindings {
			samplers := make([]resource.Handle, len(b.ImmutableSamplers))
			for j, name := range b.ImmutableSamplers {
				hash, ok := named[name]
				if !ok {
					return nil, fmt.Errorf("descriptor set layout %q: unknown sampler %q (must be defined earlier in the fixture)", d.Name, name)
				}
				samplers[j] = resource.ContentHash(hash)
			}
			bindings[i] = resource.DescriptorSetLayoutBinding{
				Binding:           b.Binding,
				DescriptorType:    resource.Enum8(b.DescriptorType),
				DescriptorCount:   b.DescriptorCount,
				StageFlags:        b.StageFlags,
				ImmutableSamplers: samplers,
			}
		}
		hash, err := rec.RecordDescriptorSetLayout(externalHandle(), resource.DescriptorSetLayoutDesc{Bindings: bindings})
		if err != nil {
			return nil, fmt.Errorf("recording descriptor set layout %q: %w", d.Name, err)
		}
		named[d.Name] = hash
	}

	for _, s := range fx.ShaderModules {
		hash, err := rec.RecordShaderModule(externalHandle(), resource.ShaderModuleDesc{Code: s.Code})
		if err != nil {
			return nil, fmt.Errorf("recording shader module %q: %w", s.Name, err)
		}
		named[s.Name] = hash
	}

	return named, nil
}

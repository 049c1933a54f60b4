// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ibriano/Fossilize/internal/replayer"
	"github.com/ibriano/Fossilize/internal/resource"
)

// runReplay implements the `replay` subcommand: it feeds a capture
// document (written by `record-demo --capture`) through a
// [replayer.Replay] call against a logging sink that stands in for a
// real driver (§4.3; §1 Non-goals: "actually creating GPU objects").
func runReplay(logger *slog.Logger, args []string) error {
	flagSet := pflag.NewFlagSet("replay", pflag.ContinueOnError)
	capturePath := flagSet.String("capture", "", "path to a capture document written by `record-demo --capture`")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *capturePath == "" {
		return fmt.Errorf("replay: --capture is required")
	}

	data, err := os.ReadFile(*capturePath)
	if err != nil {
		return fmt.Errorf("replay: reading capture document: %w", err)
	}

	sink := newLoggingSink(logger)
	stats, err := replayer.Replay(data, sink, logger)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	logger.Info("replay: finished",
		slog.Int("delivered", stats.Delivered),
		slog.Int("rejected", stats.Rejected),
		slog.Int("mismatch", stats.Mismatch),
		slog.Int("cascaded", stats.Cascaded))
	return nil
}

// loggingSink accepts every object a real driver would, minting a
// fresh synthetic external handle per delivery and logging it. It
// never fails a delivery, so Rejected in the resulting Stats is always
// zero; hash mismatches the replayer itself detects count under
// Mismatch.
type loggingSink struct {
	logger *slog.Logger
	next   uint64
}

func newLoggingSink(logger *slog.Logger) *loggingSink {
	return &loggingSink{logger: logger, next: 1}
}

func (s *loggingSink) handle() resource.Handle {
	h := resource.Handle{Kind: resource.ExternalHandle, Value: s.next}
	s.next++
	return h
}

func (s *loggingSink) accept(kind resource.Kind, hash resource.Hash) resource.Handle {
	h := s.handle()
	s.logger.Info("replay: delivered object", slog.String("kind", kind.String()), slog.String("hash", hash.String()), slog.Uint64("handle", h.Value))
	return h
}

func (s *loggingSink) AcceptApplicationInfo(hash resource.Hash, desc *resource.ApplicationInfoDesc) error {
	s.logger.Info("replay: delivered application info", slog.String("hash", hash.String()), slog.String("application", desc.ApplicationName))
	return nil
}

func (s *loggingSink) AcceptPhysicalDeviceFeatures(hash resource.Hash, desc *resource.PhysicalDeviceFeaturesDesc) error {
	s.logger.Info("replay: delivered physical device features", slog.String("hash", hash.String()))
	return nil
}

func (s *loggingSink) AcceptSampler(hash resource.Hash, desc *resource.SamplerDesc) (resource.Handle, error) {
	return s.accept(resource.KindSampler, hash), nil
}

func (s *loggingSink) AcceptDescriptorSetLayout(hash resource.Hash, desc *resource.DescriptorSetLayoutDesc) (resource.Handle, error) {
	return s.accept(resource.KindDescriptorSetLayout, hash), nil
}

func (s *loggingSink) AcceptPipelineLayout(hash resource.Hash, desc *resource.PipelineLayoutDesc) (resource.Handle, error) {
	return s.accept(resource.KindPipelineLayout, hash), nil
}

func (s *loggingSink) AcceptShaderModule(hash resource.Hash, desc *resource.ShaderModuleDesc) (resource.Handle, error) {
	return s.accept(resource.KindShaderModule, hash), nil
}

func (s *loggingSink) AcceptRenderPass(hash resource.Hash, desc *resource.RenderPassDesc) (resource.Handle, error) {
	return s.accept(resource.KindRenderPass, hash), nil
}

func (s *loggingSink) AcceptComputePipeline(hash resource.Hash, desc *resource.ComputePipelineDesc) (resource.Handle, error) {
	return s.accept(resource.KindComputePipeline, hash), nil
}

func (s *loggingSink) AcceptGraphicsPipeline(hash resource.Hash, desc *resource.GraphicsPipelineDesc) (resource.Handle, error) {
	return s.accept(resource.KindGraphicsPipeline, hash), nil
}

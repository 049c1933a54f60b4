// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ibriano/Fossilize/internal/archive"
	"github.com/ibriano/Fossilize/internal/recorder"
	"github.com/ibriano/Fossilize/internal/resource"
	"github.com/ibriano/Fossilize/internal/wire"
)

// runRecord implements the `record-demo` subcommand: it plays a YAML
// fixture through a Recorder, writes each resulting object into a
// single-file archive as its own canonical (kind, hash) record (§3
// "Entity: Resource"), and writes the recorder's full serialized
// capture document to a separate file for `replay` to consume (§4.2,
// §6).
func runRecord(logger *slog.Logger, args []string) error {
	flagSet := pflag.NewFlagSet("record-demo", pflag.ContinueOnError)
	fixturePath := flagSet.String("fixture", "", "path to a YAML fixture describing objects to record")
	dbPath := flagSet.String("db", "", "single-file archive to write per-object records into")
	capturePath := flagSet.String("capture", "", "path to write the recorder's serialized capture document")
	compress := flagSet.Bool("compress", true, "compress archive payloads")
	checksum := flagSet.Bool("checksum", true, "checksum archive payloads")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *fixturePath == "" || *dbPath == "" {
		return fmt.Errorf("record: --fixture and --db are required")
	}

	fx, err := loadFixture(*fixturePath)
	if err != nil {
		return err
	}

	rec := recorder.New(logger)
	named, err := applyFixture(rec, fx)
	if err != nil {
		return err
	}

	db, err := archive.Open(*dbPath, archive.Append, logger)
	if err != nil {
		return fmt.Errorf("record: opening archive: %w", err)
	}
	defer db.Close()

	var flags archive.WriteFlags
	if *compress {
		flags |= archive.Compress
	}
	if *checksum {
		flags |= archive.ComputeChecksum
	}

	tables := rec.Tables()
	written := 0
	for hash, d := range tables.Samplers() {
		if err := writeJSONEntry(db, resource.KindSampler, hash, wire.ToSamplerRecord(hash, d), flags); err != nil {
			return err
		}
		written++
	}
	for hash, d := range tables.DescriptorSetLayouts() {
		if err := writeJSONEntry(db, resource.KindDescriptorSetLayout, hash, wire.ToDescriptorSetLayoutRecord(hash, d), flags); err != nil {
			return err
		}
		written++
	}
	for hash, d := range tables.ShaderModules() {
		if err := writeJSONEntry(db, resource.KindShaderModule, hash, wire.ToShaderModuleRecord(hash, d), flags); err != nil {
			return err
		}
		written++
	}
	if d, hash, ok := tables.ApplicationInfo(); ok {
		if err := writeJSONEntry(db, resource.KindApplicationInfo, hash, wire.ToApplicationInfoRecord(hash, d), flags); err != nil {
			return err
		}
		written++
	}

	logger.Info("record: wrote archive entries", slog.Int("count", written), slog.String("db", *dbPath))
	for name, hash := range named {
		logger.Info("record: named object", slog.String("name", name), slog.String("hash", hash.String()))
	}

	if *capturePath != "" {
		doc, err := rec.Serialize()
		if err != nil {
			return fmt.Errorf("record: serializing capture document: %w", err)
		}
		if err := os.WriteFile(*capturePath, doc, 0o644); err != nil {
			return fmt.Errorf("record: writing capture document: %w", err)
		}
		logger.Info("record: wrote capture document", slog.String("path", *capturePath))
	}

	return nil
}

func writeJSONEntry(db *archive.StreamArchive, kind resource.Kind, hash resource.Hash, record any, flags archive.WriteFlags) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("record: encoding %s/%s: %w", kind, hash, err)
	}
	if err := db.WriteEntry(kind, hash, payload, flags); err != nil {
		return fmt.Errorf("record: writing %s/%s: %w", kind, hash, err)
	}
	return nil
}

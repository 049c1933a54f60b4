// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

// fossilize-tool is the command-line driver named in §2's data flow
// ("application → Recorder → Archive. Later: Archive → Replayer") but
// left unspecified beyond where it touches the core (§1 Non-goals).
// It exercises the Recorder, Archive, and Merger packages end to end
// against a YAML fixture standing in for a real captured application.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	logLevel := slog.LevelInfo
	if os.Getenv("FOSSILIZE_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "record-demo":
		err = runRecord(logger, args)
	case "replay":
		err = runReplay(logger, args)
	case "merge":
		err = runMerge(logger, args)
	default:
		fmt.Fprintf(os.Stderr, "fossilize-tool: unknown command %q\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "fossilize-tool: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: fossilize-tool <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  record-demo --fixture FILE --db PATH [--capture FILE]  record a fixture into an archive")
	fmt.Fprintln(os.Stderr, "  replay --capture FILE                              replay a capture document")
	fmt.Fprintln(os.Stderr, "  merge --dest PATH BUCKET...                        reconcile bucket files")
}

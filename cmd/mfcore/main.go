// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package main is the entry point for the mfcore training binary.
//
// mfcore trains a matrix factorization model on a generated low-rank rating
// matrix and prints a JSON summary of the run.
//
// # Commands
//
//	mfcore train     run one training job
//	mfcore version   print the build version
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (MFCORE_*)
//   - Config file ($MFCORE_CONFIG or mfcore.yaml)
//   - Built-in defaults
//
// See package internal/config for the full list of keys.
//
// # Metrics
//
// With MFCORE_METRICS_ENABLED=true the Prometheus endpoint is served on
// MFCORE_METRICS_LISTEN for the duration of the run.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run at the next epoch boundary. The summary
// is still printed and the process exits with status 1.
//
// # Example Usage
//
//	export MFCORE_ALGORITHM=dsgd
//	export MFCORE_ITERATIONS=200
//	export MFCORE_BOLD_DRIVER=true
//	export MFCORE_LOG_FORMAT=console
//	./mfcore train
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `usage: mfcore <command>

commands:
  train     train a model and print the run summary as JSON
  version   print the version
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "train":
		return train(ctx, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "mfcore %s\n", version)
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package logging provides the zerolog-based global logger of the mfcore
// binary.
//
// Library packages never log through the global logger: they receive a
// zerolog.Logger by value (training.New, convergence.NewMonitor). The binary
// configures the global logger once with Init and hands each of them a child
// from WithComponent.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	log := logging.WithComponent("cli")
//	log.Info().Str("algorithm", "dsgd").Msg("Configuration loaded")
//
// Err covers the one failure that happens before Init:
//
//	logging.Err(err).Msg("Failed to load configuration")
//
// # Training Records
//
// A verbose training run emits one record per epoch:
//
//	{"level":"info","component":"training","run_id":"...","algorithm":"biasedmf","iter":3,"loss":412.7,"delta_loss":18.2,"message":"epoch finished"}
//
// delta_loss is absent on the first epoch, which has no previous loss.
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
package logging

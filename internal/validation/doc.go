// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator (struct info is cached on first
// use) and turns validator field errors into readable messages. Field names in
// messages come from the `koanf` struct tag when present, so a failing option
// is reported under the same key a user writes in the config file.
//
// Custom tags:
//   - finite: float field must not be NaN or ±Inf
//
// Example usage:
//
//	type Options struct {
//	    Iterations int     `koanf:"iterations" validate:"gt=0"`
//	    RegUser    float64 `koanf:"reg_user" validate:"gte=0,finite"`
//	}
//
//	if verr := validation.ValidateStruct(&opts); verr != nil {
//	    return fmt.Errorf("invalid options: %w", verr)
//	}
package validation

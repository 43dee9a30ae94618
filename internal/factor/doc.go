// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package factor holds the latent factor tables of a matrix factorization
// model and the inner-product predictor built on them.
//
// # Tables
//
// A Table is a dense rows x factors matrix backed by gonum's mat.Dense. Row r
// is the latent vector of entity r (a user or an item). The shape is fixed
// when the table is created; values are mutated in place by the training
// algorithm through Row, which returns a slice aliasing the table storage.
//
// # Store
//
// Setup allocates the user and item tables of one training run and fills
// every entry with an independent draw from Normal(initMean, initStd):
//
//	store, err := factor.Setup(numUsers, numItems, 10, 0.0, 0.1, rand.NewPCG(42, 42))
//	if err != nil {
//	    return err // wraps ErrInvalidDimensions
//	}
//	score, err := store.Predict(userIdx, itemIdx)
//
// Predict returns the raw dot product of the two latent vectors. Biases,
// global means and clamping belong to the concrete algorithm.
//
// # Thread Safety
//
// Tables carry no locks. A Store is owned by exactly one training run;
// concurrent writers must partition rows between them (see the DSGD
// algorithm) and finish before the epoch loss is evaluated.
package factor

// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package algorithms implements matrix factorization algorithms on top of the
// training core.
//
// Each algorithm implements training.Algorithm: it owns the gradient step
// and the loss, while the training.Trainer owns the factor tables, the
// convergence decision and the learning rate schedule.
//
// # Algorithms
//
//   - RegSVD: regularized SVD-style factorization, r(u,i) = p_u . q_i
//   - BiasedMF: adds global mean and user/item biases to RegSVD
//   - DSGD: stratified SGD running disjoint blocks of the rating matrix on
//     parallel workers (Gemulla et al., 2011)
//
// All three report the loss 1/2 * sum(e^2 + regularization) accumulated
// during the pass, computed before each update.
//
// # Thread Safety
//
// Epoch acquires an exclusive lock while Predict uses a shared lock, so a
// model may be queried while another goroutine waits to train it.
package algorithms

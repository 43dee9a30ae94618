// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package parallel fans index ranges out over worker goroutines. Every call
// returns only after all of its work has finished.
package parallel

import "sync"

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// Workers returns a config that runs up to n goroutines with one item each.
// Used when every item is already a large unit of work, such as a stratum.
func Workers(n int) Config {
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// chunks returns the chunk size for n items, or 0 when the work should run
// sequentially.
func (c Config) chunks(n int) int {
	if !c.Enabled || c.NumWorkers <= 1 || n < c.MinChunkSize || n < 2 {
		return 0
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize, 1)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	chunkSize := cfg.chunks(n)
	if chunkSize == 0 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Sum returns the sum of f(i) for i in [0, n). Partial sums are combined in
// chunk order, so the result does not depend on goroutine scheduling.
func Sum(n int, f func(i int) float64, cfg Config) float64 {
	chunkSize := cfg.chunks(n)
	if chunkSize == 0 {
		var total float64
		for i := 0; i < n; i++ {
			total += f(i)
		}
		return total
	}

	partial := make([]float64, (n+chunkSize-1)/chunkSize)
	For(len(partial), func(c int) {
		end := min((c+1)*chunkSize, n)
		for i := c * chunkSize; i < end; i++ {
			partial[c] += f(i)
		}
	}, Workers(len(partial)))

	var total float64
	for _, p := range partial {
		total += p
	}
	return total
}

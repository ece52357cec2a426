// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import (
	"context"
	"encoding/binary"
	"math/rand/v2"
	"sync/atomic"
)

// fixedSource returns the same big-endian draw value on every read.
func fixedSource(v uint32) EntropySource {
	return EntropyFunc(func(context.Context) ([]byte, error) {
		block := make([]byte, 32)
		binary.BigEndian.PutUint32(block, v)
		return block, nil
	})
}

// seededSource yields a reproducible pseudo-random stream for distribution tests.
func seededSource(seed uint64) EntropySource {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // G404: deterministic test stream
	return EntropyFunc(func(context.Context) ([]byte, error) {
		block := make([]byte, 8)
		binary.BigEndian.PutUint64(block, rng.Uint64())
		return block, nil
	})
}

// countingSource counts reads made against the wrapped source.
type countingSource struct {
	inner EntropySource
	reads atomic.Int64
}

func (c *countingSource) Read(ctx context.Context) ([]byte, error) {
	c.reads.Add(1)
	return c.inner.Read(ctx)
}

func candidates(ids ...string) []Candidate {
	out := make([]Candidate, len(ids))
	for i, id := range ids {
		out[i] = Candidate{ID: id}
	}
	return out
}

func ratingPtr(v float64) *float64 {
	return &v
}

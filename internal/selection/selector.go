// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import (
	"context"
	"fmt"
	"strings"
)

// drawSpace is the size of the uint32 draw space (2^32).
const drawSpace = float64(1 << 32)

// ZeroWeightPolicy decides the weighted selector's behavior when the total
// weight of the eligible set is zero.
type ZeroWeightPolicy int

const (
	// ZeroWeightUniform draws uniformly among the eligible candidates.
	ZeroWeightUniform ZeroWeightPolicy = iota

	// ZeroWeightLast returns the last eligible candidate without a draw.
	// This keeps compatibility with the legacy picker.
	ZeroWeightLast
)

// String returns the config name of the policy.
func (p ZeroWeightPolicy) String() string {
	switch p {
	case ZeroWeightUniform:
		return "uniform"
	case ZeroWeightLast:
		return "last"
	default:
		return fmt.Sprintf("ZeroWeightPolicy(%d)", int(p))
	}
}

// ParseZeroWeightPolicy converts a config value into a policy.
func ParseZeroWeightPolicy(s string) (ZeroWeightPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform":
		return ZeroWeightUniform, nil
	case "last":
		return ZeroWeightLast, nil
	default:
		return ZeroWeightUniform, fmt.Errorf("unknown zero weight policy %q (want uniform or last)", s)
	}
}

// Selector draws one candidate using an injected entropy source.
// It holds no mutable state and is safe for concurrent use.
type Selector struct {
	source     EntropySource
	zeroWeight ZeroWeightPolicy
}

// Option configures a Selector.
type Option func(*Selector)

// WithZeroWeightPolicy sets the zero-total-weight behavior.
func WithZeroWeightPolicy(p ZeroWeightPolicy) Option {
	return func(s *Selector) {
		s.zeroWeight = p
	}
}

// NewSelector creates a Selector backed by src.
func NewSelector(src EntropySource, opts ...Option) *Selector {
	s := &Selector{
		source:     src,
		zeroWeight: ZeroWeightUniform,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ZeroWeightPolicy returns the configured zero-total-weight behavior.
func (s *Selector) ZeroWeightPolicy() ZeroWeightPolicy {
	return s.zeroWeight
}

// Uniform picks one candidate uniformly among those whose ID is not excluded.
// Only identifier exclusion happens here; category exclusion is the caller's
// job (see Filter).
//
// Returns ErrEmptyInput for an empty list (before any entropy draw),
// ErrNoEligibleItems when every ID is excluded, or an *EntropySourceError.
func (s *Selector) Uniform(ctx context.Context, candidates []Candidate, excludedIDs IDSet) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrEmptyInput
	}

	eligible := FilterByID(candidates, excludedIDs)
	if len(eligible) == 0 {
		return Candidate{}, ErrNoEligibleItems
	}

	idx, err := s.uniformIndex(ctx, len(eligible))
	if err != nil {
		return Candidate{}, err
	}
	return eligible[idx], nil
}

// Weighted picks one candidate with probability proportional to weight.
// A nil weight function weighs every candidate equally.
//
// The eligible list is scanned in order and the first candidate whose running
// weight sum reaches the draw point wins, so earlier candidates win ties.
// Failure modes match Uniform.
func (s *Selector) Weighted(ctx context.Context, candidates []Candidate, weight WeightFunc, excludedIDs IDSet) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrEmptyInput
	}

	eligible := FilterByID(candidates, excludedIDs)
	if len(eligible) == 0 {
		return Candidate{}, ErrNoEligibleItems
	}

	if weight == nil {
		weight = UniformWeight
	}

	weights := make([]float64, len(eligible))
	total := 0.0
	for i := range eligible {
		weights[i] = weight(eligible[i])
		total += weights[i]
	}

	// Covers zero and NaN totals.
	if !(total > 0) {
		return s.zeroTotal(ctx, eligible)
	}

	v, err := drawUint32(ctx, s.source)
	if err != nil {
		return Candidate{}, err
	}
	point := float64(v) / drawSpace * total

	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative >= point {
			return eligible[i], nil
		}
	}

	// Floating point rounding can leave the point just above the final sum.
	return eligible[len(eligible)-1], nil
}

func (s *Selector) zeroTotal(ctx context.Context, eligible []Candidate) (Candidate, error) {
	if s.zeroWeight == ZeroWeightLast {
		return eligible[len(eligible)-1], nil
	}

	idx, err := s.uniformIndex(ctx, len(eligible))
	if err != nil {
		return Candidate{}, err
	}
	return eligible[idx], nil
}

// uniformIndex maps one entropy draw onto [0, n) by modulo reduction.
func (s *Selector) uniformIndex(ctx context.Context, n int) (int, error) {
	v, err := drawUint32(ctx, s.source)
	if err != nil {
		return 0, err
	}
	return int(uint64(v) % uint64(n)), nil //nolint:gosec // G115: n is a positive slice length
}

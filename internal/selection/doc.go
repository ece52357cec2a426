// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package selection implements the restaurant selection engine.

The engine picks exactly one candidate from a caller-supplied list. It runs in
three steps:

 1. Eligibility filtering: candidates whose ID is excluded, or whose category
    tags contain an excluded category term, are removed.
 2. An entropy draw: one block of bytes from an injected EntropySource.
 3. A selector: either a uniform index draw or a cumulative-weight scan.

# Entropy

Selectors never touch a platform random API directly. Every draw goes
through an EntropySource so tests can substitute a deterministic stub:

	src := selection.EntropyFunc(func(ctx context.Context) ([]byte, error) {
	    return []byte{0, 0, 0, 7}, nil
	})
	sel := selection.NewSelector(src)

Production code uses NewHashedSource, which hashes a nanosecond timestamp
together with bytes from crypto/rand. A failing source surfaces as an
*EntropySourceError; there is no fallback to a weaker generator.

# Uniform Selection

	pick, err := sel.Uniform(ctx, candidates, recentIDs)

The first four digest bytes are read as a big-endian uint32 and reduced
modulo the eligible count. The modulo reduction carries a small bias when the
count does not divide 2^32; it is accepted rather than corrected.

# Weighted Selection

	pick, err := sel.Weighted(ctx, candidates, selection.DefaultWeight(&userLoc), recentIDs)

The draw point is (u32 / 2^32) * total and the first candidate whose running
sum reaches it wins. When every weight is zero the ZeroWeightPolicy decides:
ZeroWeightUniform (default) draws uniformly, ZeroWeightLast returns the last
eligible candidate.

# Errors

  - ErrEmptyInput: the candidate list was empty. Checked before any filtering
    or entropy draw.
  - ErrNoEligibleItems: every candidate was excluded.
  - ErrEntropySource: the entropy source failed (wrapped by *EntropySourceError).

The package is stateless and does not log. A Selector only holds its entropy
source and policy and is safe for concurrent use.
*/
package selection

// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Filter returns the candidates that survive both exclusions, in input order.
//
// A candidate is removed when its ID is in excludedIDs, or when any of its
// category tags contains any excluded category term. Category matching is a
// case-insensitive substring match so compound tags are caught:
// "fast_food_restaurant" is excluded by "fast_food" and by "FAST_FOOD".
//
// When both exclusions are empty the input slice is returned as-is.
// Filter never modifies candidates.
func Filter(candidates []Candidate, excludedIDs IDSet, excludedCategories []string) []Candidate {
	caser := cases.Fold()
	terms := foldTerms(caser, excludedCategories)

	if len(excludedIDs) == 0 && len(terms) == 0 {
		return candidates
	}

	eligible := make([]Candidate, 0, len(candidates))
	for i := range candidates {
		if excludedIDs.Contains(candidates[i].ID) {
			continue
		}
		if len(terms) > 0 && hasExcludedCategory(caser, candidates[i].Categories, terms) {
			continue
		}
		eligible = append(eligible, candidates[i])
	}
	return eligible
}

// FilterByID removes candidates whose ID is in ids.
func FilterByID(candidates []Candidate, ids IDSet) []Candidate {
	return Filter(candidates, ids, nil)
}

// FilterByCategory removes candidates tagged with an excluded category.
// Candidates without categories always pass.
func FilterByCategory(candidates []Candidate, categories []string) []Candidate {
	return Filter(candidates, nil, categories)
}

// foldTerms normalizes exclusion terms and drops blanks.
// A blank term would match every tag.
func foldTerms(caser cases.Caser, categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	terms := make([]string, 0, len(categories))
	for _, c := range categories {
		if folded := foldCategory(caser, c); folded != "" {
			terms = append(terms, folded)
		}
	}
	return terms
}

func hasExcludedCategory(caser cases.Caser, tags, terms []string) bool {
	for _, tag := range tags {
		folded := foldCategory(caser, tag)
		for _, term := range terms {
			if strings.Contains(folded, term) {
				return true
			}
		}
	}
	return false
}

// foldCategory applies NFKC normalization and Unicode case folding.
func foldCategory(caser cases.Caser, s string) string {
	return caser.String(norm.NFKC.String(strings.TrimSpace(s)))
}

package recommend

import "math"

// Diversify re-orders a ranked sequence so no category floods the head of
// the list. Per-category cap = ceil(limit / max(distinctCategories, 4)),
// computed once over the input. Candidates over their cap are deferred, not
// dropped, and appended in rank order after the forward pass, so the output
// is always a permutation of the input; truncation belongs to the assembler.
func Diversify(ranked []ScoredCandidate, limit int) []ScoredCandidate {
	if len(ranked) <= 1 {
		return ranked
	}
	if limit <= 0 {
		return ranked
	}

	distinct := map[string]struct{}{}
	for _, sc := range ranked {
		distinct[sc.Listing.Category] = struct{}{}
	}
	denom := len(distinct)
	if denom < 4 {
		denom = 4
	}
	cap := int(math.Ceil(float64(limit) / float64(denom)))
	if cap < 1 {
		cap = 1
	}

	counts := map[string]int{}
	accepted := make([]ScoredCandidate, 0, len(ranked))
	deferred := make([]ScoredCandidate, 0)

	for _, sc := range ranked {
		c := sc.Listing.Category
		if counts[c] < cap {
			counts[c]++
			accepted = append(accepted, sc)
			continue
		}
		deferred = append(deferred, sc)
	}

	return append(accepted, deferred...)
}

package recommend

import "sort"

// MinQualifyingScore excludes pure noise, not cold-start listings: a free
// listing from a proven instructor still clears it on price + social proof.
const MinQualifyingScore = 15.0

// Qualify drops candidates at or below the minimum score. A new sequence is
// returned; the input is not reordered.
func Qualify(scored []ScoredCandidate) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if sc.TotalScore > MinQualifyingScore {
			out = append(out, sc)
		}
	}
	return out
}

// Rank orders by score descending with a total tie-break (newer CreatedAt
// first, then ID ascending) so the final ordering is reproducible no matter
// how scoring was scheduled.
func Rank(scored []ScoredCandidate) []ScoredCandidate {
	out := make([]ScoredCandidate, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		ci, cj := out[i].Listing.CreatedAt, out[j].Listing.CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return out[i].Listing.ID.String() < out[j].Listing.ID.String()
	})
	return out
}

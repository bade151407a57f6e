package recommend

// trendingBand is the score distance within which a trending listing may
// swap past the non-trending listing directly above it.
const trendingBand = 2.5

// ApplyTrending gives trending listings a bounded local nudge: one position
// past an immediately-adjacent non-trending neighbour of similar score. It
// is not a re-sort, so the diversifier's interleaving survives, and two
// non-trending listings never change relative order.
func ApplyTrending(items []ScoredCandidate) []ScoredCandidate {
	if len(items) <= 1 {
		return items
	}

	out := make([]ScoredCandidate, len(items))
	copy(out, items)

	for i := 1; i < len(out); i++ {
		cur := out[i]
		prev := out[i-1]
		if !cur.Listing.IsTrending || prev.Listing.IsTrending {
			continue
		}
		if prev.TotalScore-cur.TotalScore > trendingBand {
			continue
		}
		out[i-1], out[i] = cur, prev
	}

	return out
}

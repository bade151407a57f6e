package recommend

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func trendItem(score float64, trending bool) ScoredCandidate {
	return ScoredCandidate{
		Listing:    CandidateListing{ID: uuid.New(), Category: "Art", CreatedAt: time.Now(), IsTrending: trending},
		TotalScore: score,
	}
}

func TestApplyTrending_SwapWithinBand(t *testing.T) {
	a := trendItem(20, false)
	b := trendItem(18.5, true)

	out := ApplyTrending([]ScoredCandidate{a, b})
	if out[0].Listing.ID != b.Listing.ID {
		t.Fatalf("trending listing within the band should move up")
	}
	if out[1].Listing.ID != a.Listing.ID {
		t.Fatalf("displaced listing should slot directly below")
	}
}

func TestApplyTrending_NoSwapBeyondBand(t *testing.T) {
	a := trendItem(20, false)
	b := trendItem(17, true)

	out := ApplyTrending([]ScoredCandidate{a, b})
	if out[0].Listing.ID != a.Listing.ID {
		t.Fatalf("a 3-point gap must not be jumped")
	}
}

func TestApplyTrending_NeverPassesAnotherTrending(t *testing.T) {
	a := trendItem(20, true)
	b := trendItem(19, true)

	out := ApplyTrending([]ScoredCandidate{a, b})
	if out[0].Listing.ID != a.Listing.ID || out[1].Listing.ID != b.Listing.ID {
		t.Fatalf("two trending listings must keep their relative order")
	}
}

func TestApplyTrending_NonTrendingOrderPreserved(t *testing.T) {
	items := []ScoredCandidate{
		trendItem(30, false),
		trendItem(29, false),
		trendItem(28.5, true),
		trendItem(27, false),
	}

	out := ApplyTrending(items)

	var nonTrending []uuid.UUID
	for _, sc := range out {
		if !sc.Listing.IsTrending {
			nonTrending = append(nonTrending, sc.Listing.ID)
		}
	}
	want := []uuid.UUID{items[0].Listing.ID, items[1].Listing.ID, items[3].Listing.ID}
	for i := range want {
		if nonTrending[i] != want[i] {
			t.Fatalf("non-trending relative order changed at %d", i)
		}
	}
}

func TestApplyTrending_DoesNotMutateInput(t *testing.T) {
	a := trendItem(20, false)
	b := trendItem(19, true)
	in := []ScoredCandidate{a, b}

	_ = ApplyTrending(in)
	if in[0].Listing.ID != a.Listing.ID {
		t.Fatalf("input slice must not be reordered")
	}
}

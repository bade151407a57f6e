package recommend

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func inCategory(category string, score float64) ScoredCandidate {
	return ScoredCandidate{
		Listing:    CandidateListing{ID: uuid.New(), Category: category, CreatedAt: time.Now()},
		TotalScore: score,
	}
}

func TestDiversify_MinorityCategorySurfaces(t *testing.T) {
	ranked := make([]ScoredCandidate, 0, 20)
	for i := 0; i < 18; i++ {
		ranked = append(ranked, inCategory("Programming", 90-float64(i)))
	}
	// two music listings ranked below every programming one
	ranked = append(ranked, inCategory("Music", 40), inCategory("Music", 39))

	out := Diversify(Rank(ranked), 10)

	if len(out) != 20 {
		t.Fatalf("diversify must not drop candidates, got %d", len(out))
	}

	musicInTop10 := 0
	for _, sc := range out[:10] {
		if sc.Listing.Category == "Music" {
			musicInTop10++
		}
	}
	if musicInTop10 != 2 {
		t.Fatalf("expected both music listings in the top 10, got %d", musicInTop10)
	}

	// cap = ceil(10 / max(2,4)) = 3
	progAtHead := 0
	for _, sc := range out[:3] {
		if sc.Listing.Category == "Programming" {
			progAtHead++
		}
	}
	if progAtHead != 3 {
		t.Fatalf("first three should be the top programming listings, got %d", progAtHead)
	}
	if out[3].Listing.Category != "Music" {
		t.Fatalf("fourth slot should be the deferred-past category, got %s", out[3].Listing.Category)
	}
}

func TestDiversify_IsPermutation(t *testing.T) {
	ranked := Rank([]ScoredCandidate{
		inCategory("A", 50), inCategory("A", 49), inCategory("A", 48), inCategory("A", 47),
		inCategory("B", 46), inCategory("C", 45),
	})

	out := Diversify(ranked, 4)

	if len(out) != len(ranked) {
		t.Fatalf("length changed: %d != %d", len(out), len(ranked))
	}
	ids := map[uuid.UUID]bool{}
	for _, sc := range ranked {
		ids[sc.Listing.ID] = true
	}
	for _, sc := range out {
		if !ids[sc.Listing.ID] {
			t.Fatalf("unknown candidate appeared in output")
		}
	}
}

func TestDiversify_NoLimitPassthrough(t *testing.T) {
	ranked := []ScoredCandidate{inCategory("A", 2), inCategory("A", 1)}
	out := Diversify(ranked, 0)
	if len(out) != 2 || out[0].Listing.ID != ranked[0].Listing.ID {
		t.Fatalf("limit<=0 must pass through unchanged")
	}
}

func TestDiversify_SingleElement(t *testing.T) {
	ranked := []ScoredCandidate{inCategory("A", 2)}
	out := Diversify(ranked, 10)
	if len(out) != 1 {
		t.Fatalf("expected single element, got %d", len(out))
	}
}

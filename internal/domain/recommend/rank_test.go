package recommend

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
)

func scoredAt(score float64, createdAt time.Time) ScoredCandidate {
	return ScoredCandidate{
		Listing:    CandidateListing{ID: uuid.New(), Category: "Programming", CreatedAt: createdAt},
		TotalScore: score,
	}
}

func TestQualify_Boundary(t *testing.T) {
	now := time.Now()
	in := []ScoredCandidate{
		scoredAt(15, now),
		scoredAt(15.01, now),
		scoredAt(0, now),
		scoredAt(80, now),
	}

	out := Qualify(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 qualifiers, got %d", len(out))
	}
	for _, sc := range out {
		if sc.TotalScore <= MinQualifyingScore {
			t.Fatalf("score %f should have been dropped", sc.TotalScore)
		}
	}
}

func TestQualify_ExactThresholdDropped(t *testing.T) {
	out := Qualify([]ScoredCandidate{scoredAt(MinQualifyingScore, time.Now())})
	if len(out) != 0 {
		t.Fatalf("score equal to the threshold must be dropped")
	}
}

func TestRank_ScoreDescThenNewerThenID(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	a := scoredAt(20, older)
	b := scoredAt(20, newer)
	c := scoredAt(30, older)

	// same score and timestamp, ordered by id string
	d := scoredAt(20, older)
	e := scoredAt(20, older)
	if d.Listing.ID.String() > e.Listing.ID.String() {
		d, e = e, d
	}

	out := Rank([]ScoredCandidate{e, a, d, b, c})

	if out[0].Listing.ID != c.Listing.ID {
		t.Fatalf("highest score must rank first")
	}
	if out[1].Listing.ID != b.Listing.ID {
		t.Fatalf("newer listing must win the score tie")
	}
	// a, d, e share score and a shares the older timestamp with d and e
	seen := map[uuid.UUID]int{}
	for i, sc := range out {
		seen[sc.Listing.ID] = i
	}
	if seen[d.Listing.ID] > seen[e.Listing.ID] {
		t.Fatalf("equal score and timestamp must order by id")
	}
}

func TestRank_DeterministicAcrossInputOrder(t *testing.T) {
	now := time.Now()
	items := make([]ScoredCandidate, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, scoredAt(float64(i%7)*10, now.Add(time.Duration(i%5)*time.Hour)))
	}

	shuffled := make([]ScoredCandidate, len(items))
	copy(shuffled, items)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	a := Rank(items)
	b := Rank(shuffled)
	for i := range a {
		if a[i].Listing.ID != b[i].Listing.ID {
			t.Fatalf("ranking differs at %d across input orderings", i)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []ScoredCandidate{scoredAt(1, now), scoredAt(2, now)}
	first := in[0].Listing.ID

	_ = Rank(in)
	if in[0].Listing.ID != first {
		t.Fatalf("input slice must not be reordered")
	}
}

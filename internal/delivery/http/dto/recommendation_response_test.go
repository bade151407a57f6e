package dto

import (
	"testing"

	"collablearn/internal/domain/recommend"
	"collablearn/internal/usecase"

	"github.com/google/uuid"
)

func TestFromRecommendationResult_ReasonLabels(t *testing.T) {
	scored := recommend.ScoredCandidate{
		Listing: recommend.CandidateListing{
			ID:         uuid.New(),
			Name:       "Go Fundamentals",
			Category:   "Programming",
			Instructor: recommend.Instructor{ID: uuid.New()},
		},
		TotalScore:    42,
		Breakdown:     recommend.Breakdown{DirectMatch: 30, PriceCompat: 12},
		PrimaryReason: recommend.ReasonDirectMatch,
	}

	out := FromRecommendationResult(usecase.RecommendationResult{Items: []recommend.ScoredCandidate{scored}})

	if len(out.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(out.Items))
	}
	it := out.Items[0]
	if it.ReasonLabel != "Matches a skill you want to learn" {
		t.Fatalf("unexpected label: %q", it.ReasonLabel)
	}
	if it.Breakdown["direct_match"] != 30 {
		t.Fatalf("breakdown missing direct_match: %v", it.Breakdown)
	}
	if len(it.Breakdown) != 6 {
		t.Fatalf("breakdown must carry every factor, got %d", len(it.Breakdown))
	}
}

func TestFromRecommendationResult_GenericLabelForZeroBreakdown(t *testing.T) {
	scored := recommend.ScoredCandidate{
		Listing: recommend.CandidateListing{
			ID:         uuid.New(),
			Instructor: recommend.Instructor{ID: uuid.New()},
		},
		PrimaryReason: recommend.ReasonDirectMatch,
	}

	out := FromRecommendationResult(usecase.RecommendationResult{Items: []recommend.ScoredCandidate{scored}})
	if out.Items[0].ReasonLabel != "Recommended for you" {
		t.Fatalf("zero breakdown must fall back to the generic label, got %q", out.Items[0].ReasonLabel)
	}
}

func TestFromRecommendationResult_EmptyGoalsSerializeAsList(t *testing.T) {
	out := FromRecommendationResult(usecase.RecommendationResult{})
	if out.Profile.LearningGoals == nil {
		t.Fatalf("goals must serialize as [] not null")
	}
	if len(out.Items) != 0 {
		t.Fatalf("expected no items")
	}
}

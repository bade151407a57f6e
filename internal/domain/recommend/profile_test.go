package recommend

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestBuildProfile_NoSignals(t *testing.T) {
	p := BuildProfile(nil, nil, nil, nil)

	if len(p.PreferredCategories) != 0 {
		t.Fatalf("expected no preferred categories, got %v", p.PreferredCategories)
	}
	if p.SkillLevel != LevelBeginner {
		t.Fatalf("expected beginner, got %s", p.SkillLevel)
	}
	if p.PriceSensitivity != 1 {
		t.Fatalf("expected max price sensitivity, got %f", p.PriceSensitivity)
	}
	if len(p.LearningGoals) != 0 {
		t.Fatalf("expected no goals, got %v", p.LearningGoals)
	}
}

func TestBuildProfile_CategoryWeights(t *testing.T) {
	p := BuildProfile(
		[]OwnedSkill{{Name: "Go", Category: "Programming"}},
		[]CompletedBooking{{Category: "Art", InstructorID: uuid.New()}},
		[]Post{{Category: "Programming"}},
		nil,
	)

	// owned(1) + post(1) = 2 for Programming, booking(2) for Art; both
	// normalize to 1.0 and tie-break alphabetically.
	if len(p.PreferredCategories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(p.PreferredCategories))
	}
	if p.PreferredCategories[0].Category != "Art" || p.PreferredCategories[1].Category != "Programming" {
		t.Fatalf("unexpected order: %v", p.PreferredCategories)
	}
	for _, cw := range p.PreferredCategories {
		if cw.Weight != 1 {
			t.Fatalf("expected weight 1 for %s, got %f", cw.Category, cw.Weight)
		}
	}
}

func TestBuildProfile_GoalsExcludeOwnedAndDedupe(t *testing.T) {
	p := BuildProfile(
		[]OwnedSkill{{Name: "Python", Category: "Programming"}},
		nil, nil,
		[]string{"Python", "Go", "go", "  Spanish "},
	)

	if len(p.LearningGoals) != 2 {
		t.Fatalf("expected 2 goals, got %v", p.LearningGoals)
	}
	if p.LearningGoals[0] != "Go" || p.LearningGoals[1] != "Spanish" {
		t.Fatalf("unexpected goals: %v", p.LearningGoals)
	}
	if !p.hasLearningGoal("GO") {
		t.Fatalf("goal lookup should be case-insensitive")
	}
	if p.hasLearningGoal("Python") {
		t.Fatalf("owned skill must not count as a goal")
	}
}

func TestBuildProfile_PriceSensitivityMedian(t *testing.T) {
	p := BuildProfile(nil, []CompletedBooking{
		{Category: "Art", Price: 20},
		{Category: "Art", Price: 40},
	}, nil, nil)

	want := 100.0 / 130.0
	if math.Abs(p.PriceSensitivity-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, p.PriceSensitivity)
	}
}

func TestBuildProfile_LevelClampedToAdvanced(t *testing.T) {
	p := BuildProfile([]OwnedSkill{
		{Name: "Go", Category: "Programming", Level: LevelExpert},
		{Name: "SQL", Category: "Programming", Level: LevelBeginner},
	}, nil, nil, nil)

	if p.SkillLevel != LevelAdvanced {
		t.Fatalf("expected advanced, got %s", p.SkillLevel)
	}
}

func TestBuildProfile_InstructorAffinities(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	p := BuildProfile(nil, []CompletedBooking{
		{Category: "Art", InstructorID: x},
		{Category: "Art", InstructorID: x},
		{Category: "Music", InstructorID: y},
	}, nil, nil)

	if p.InstructorAffinities[x] != 1 {
		t.Fatalf("expected affinity 1 for most-booked instructor, got %f", p.InstructorAffinities[x])
	}
	if p.InstructorAffinities[y] != 0.5 {
		t.Fatalf("expected affinity 0.5, got %f", p.InstructorAffinities[y])
	}
}

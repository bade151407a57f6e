package recommend

import (
	"time"

	"github.com/google/uuid"
)

type Level int

const (
	LevelBeginner Level = iota
	LevelIntermediate
	LevelAdvanced
	LevelExpert
)

func (l Level) String() string {
	switch l {
	case LevelIntermediate:
		return "intermediate"
	case LevelAdvanced:
		return "advanced"
	case LevelExpert:
		return "expert"
	default:
		return "beginner"
	}
}

func ParseLevel(s string) Level {
	switch s {
	case "intermediate":
		return LevelIntermediate
	case "advanced":
		return LevelAdvanced
	case "expert":
		return LevelExpert
	default:
		return LevelBeginner
	}
}

type Instructor struct {
	ID                uuid.UUID
	Rating            float64
	SessionsCompleted int
	AccountAgeDays    int
}

type CandidateListing struct {
	ID          uuid.UUID
	Name        string
	Category    string
	SubCategory string
	Tags        []string
	Instructor  Instructor
	Price       float64
	Level       Level
	CreatedAt   time.Time
	IsTrending  bool
}

type CategoryWeight struct {
	Category string
	Weight   float64
}

// UserProfile is derived fresh per run and read-only afterwards; scoring
// goroutines share it by reference.
type UserProfile struct {
	PreferredCategories  []CategoryWeight
	SkillLevel           Level
	LearningGoals        []string
	PriceSensitivity     float64
	InstructorAffinities map[uuid.UUID]float64

	goals map[string]struct{}
}

func (p UserProfile) Affinity(category string) float64 {
	for _, cw := range p.PreferredCategories {
		if cw.Category == category {
			return cw.Weight
		}
	}
	return 0
}

func (p UserProfile) InTopCategories(category string, n int) bool {
	if n > len(p.PreferredCategories) {
		n = len(p.PreferredCategories)
	}
	for i := 0; i < n; i++ {
		if p.PreferredCategories[i].Category == category {
			return true
		}
	}
	return false
}

type Reason string

const (
	ReasonDirectMatch       Reason = "direct_match"
	ReasonCategoryAffinity  Reason = "category_affinity"
	ReasonInstructorQuality Reason = "instructor_quality"
	ReasonSocialProof       Reason = "social_proof"
	ReasonPriceCompat       Reason = "price_compatibility"
	ReasonDiversityBonus    Reason = "diversity_bonus"
)

// Breakdown is a closed set of factors; a map would let a misspelled factor
// name vanish from scoring silently.
type Breakdown struct {
	DirectMatch       float64
	CategoryAffinity  float64
	InstructorQuality float64
	SocialProof       float64
	PriceCompat       float64
	DiversityBonus    float64
}

func (b Breakdown) Total() float64 {
	return b.DirectMatch + b.CategoryAffinity + b.InstructorQuality + b.SocialProof + b.PriceCompat + b.DiversityBonus
}

func (b Breakdown) IsZero() bool {
	return b.Total() == 0
}

// Factors returns contributions in the fixed priority order used for
// primary-reason tie-breaking.
func (b Breakdown) Factors() []struct {
	Reason Reason
	Value  float64
} {
	return []struct {
		Reason Reason
		Value  float64
	}{
		{ReasonDirectMatch, b.DirectMatch},
		{ReasonCategoryAffinity, b.CategoryAffinity},
		{ReasonInstructorQuality, b.InstructorQuality},
		{ReasonSocialProof, b.SocialProof},
		{ReasonPriceCompat, b.PriceCompat},
		{ReasonDiversityBonus, b.DiversityBonus},
	}
}

type ScoredCandidate struct {
	Listing       CandidateListing
	TotalScore    float64
	Breakdown     Breakdown
	PrimaryReason Reason
}

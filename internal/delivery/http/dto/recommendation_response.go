package dto

import (
	"math"
	"time"

	"collablearn/internal/domain/recommend"
	"collablearn/internal/usecase"
)

type RecommendationItemResponse struct {
	ListingID     string             `json:"listing_id"`
	Name          string             `json:"name"`
	Category      string             `json:"category"`
	SubCategory   string             `json:"sub_category,omitempty"`
	InstructorID  string             `json:"instructor_id"`
	Price         float64            `json:"price"`
	Level         string             `json:"level"`
	IsTrending    bool               `json:"is_trending"`
	Score         float64            `json:"score"`
	Breakdown     map[string]float64 `json:"breakdown"`
	PrimaryReason string             `json:"primary_reason"`
	ReasonLabel   string             `json:"reason_label"`
}

type CategoryWeightResponse struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

type ProfileSummaryResponse struct {
	PreferredCategories []CategoryWeightResponse `json:"preferred_categories"`
	SkillLevel          string                   `json:"skill_level"`
	LearningGoals       []string                 `json:"learning_goals"`
}

type RecommendationMetadataResponse struct {
	TotalAnalyzed int       `json:"total_analyzed"`
	Qualifying    int       `json:"qualifying"`
	GeneratedAt   time.Time `json:"generated_at"`
}

type RecommendationsResponse struct {
	Items    []RecommendationItemResponse   `json:"items"`
	Profile  ProfileSummaryResponse         `json:"profile"`
	Metadata RecommendationMetadataResponse `json:"metadata"`
}

var reasonLabels = map[recommend.Reason]string{
	recommend.ReasonDirectMatch:       "Matches a skill you want to learn",
	recommend.ReasonCategoryAffinity:  "Popular in a category you engage with",
	recommend.ReasonInstructorQuality: "Highly rated, experienced instructor",
	recommend.ReasonSocialProof:       "Frequently booked by other learners",
	recommend.ReasonPriceCompat:       "Fits your typical budget",
	recommend.ReasonDiversityBonus:    "Something new outside your usual categories",
}

const genericReasonLabel = "Recommended for you"

func FromRecommendationResult(res usecase.RecommendationResult) RecommendationsResponse {
	items := make([]RecommendationItemResponse, 0, len(res.Items))
	for _, sc := range res.Items {
		items = append(items, fromScoredCandidate(sc))
	}

	cats := make([]CategoryWeightResponse, 0, len(res.ProfileSummary.PreferredCategories))
	for _, cw := range res.ProfileSummary.PreferredCategories {
		cats = append(cats, CategoryWeightResponse{Category: cw.Category, Weight: round2(cw.Weight)})
	}

	goals := res.ProfileSummary.LearningGoals
	if goals == nil {
		goals = []string{}
	}

	return RecommendationsResponse{
		Items: items,
		Profile: ProfileSummaryResponse{
			PreferredCategories: cats,
			SkillLevel:          res.ProfileSummary.SkillLevel,
			LearningGoals:       goals,
		},
		Metadata: RecommendationMetadataResponse{
			TotalAnalyzed: res.Metadata.TotalAnalyzed,
			Qualifying:    res.Metadata.Qualifying,
			GeneratedAt:   res.Metadata.GeneratedAt,
		},
	}
}

func fromScoredCandidate(sc recommend.ScoredCandidate) RecommendationItemResponse {
	breakdown := make(map[string]float64, 6)
	for _, f := range sc.Breakdown.Factors() {
		breakdown[string(f.Reason)] = round2(f.Value)
	}

	label := genericReasonLabel
	if !sc.Breakdown.IsZero() {
		if l, ok := reasonLabels[sc.PrimaryReason]; ok {
			label = l
		}
	}

	return RecommendationItemResponse{
		ListingID:     sc.Listing.ID.String(),
		Name:          sc.Listing.Name,
		Category:      sc.Listing.Category,
		SubCategory:   sc.Listing.SubCategory,
		InstructorID:  sc.Listing.Instructor.ID.String(),
		Price:         sc.Listing.Price,
		Level:         sc.Listing.Level.String(),
		IsTrending:    sc.Listing.IsTrending,
		Score:         round2(sc.TotalScore),
		Breakdown:     breakdown,
		PrimaryReason: string(sc.PrimaryReason),
		ReasonLabel:   label,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

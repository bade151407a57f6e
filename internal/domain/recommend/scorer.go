package recommend

import (
	"errors"

	"github.com/google/uuid"
)

var ErrMissingInstructor = errors.New("candidate missing instructor")

const (
	weightDirectMatch       = 30.0
	weightCategoryAffinity  = 25.0
	weightInstructorQuality = 20.0
	weightSocialProof       = 10.0
	weightPriceCompat       = 10.0
	weightDiversityBonus    = 5.0

	// sessions needed to max out the corresponding factor
	instructorQualitySaturation = 10.0
	socialProofSaturation       = 50.0
)

// Score computes the factor breakdown for one candidate against a profile.
// Candidates are independent; callers may fan this out across goroutines as
// long as the profile is not mutated.
func Score(listing CandidateListing, profile UserProfile) (ScoredCandidate, error) {
	if listing.Instructor.ID == uuid.Nil {
		return ScoredCandidate{}, ErrMissingInstructor
	}

	var b Breakdown

	if profile.hasLearningGoal(listing.Name) {
		b.DirectMatch = weightDirectMatch
	}

	b.CategoryAffinity = weightCategoryAffinity * profile.Affinity(listing.Category)

	b.InstructorQuality = instructorQuality(listing.Instructor)
	b.SocialProof = socialProof(listing.Instructor)
	b.PriceCompat = priceCompatibility(listing.Price, profile.PriceSensitivity)

	// exploratory seed for the diversifier; meaningless without preferences
	if len(profile.PreferredCategories) > 0 && !profile.InTopCategories(listing.Category, 2) {
		b.DiversityBonus = weightDiversityBonus
	}

	return ScoredCandidate{
		Listing:       listing,
		TotalScore:    b.Total(),
		Breakdown:     b,
		PrimaryReason: primaryReason(b),
	}, nil
}

// instructorQuality rewards rating only once the instructor has a session
// track record; a five-star instructor with zero sessions contributes 0.
func instructorQuality(in Instructor) float64 {
	rating := in.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	sessions := float64(in.SessionsCompleted)
	if sessions <= 0 {
		return 0
	}
	volume := sessions / instructorQualitySaturation
	if volume > 1 {
		volume = 1
	}
	return weightInstructorQuality * (rating / 5) * volume
}

func socialProof(in Instructor) float64 {
	sessions := float64(in.SessionsCompleted)
	if sessions <= 0 {
		return 0
	}
	v := sessions / socialProofSaturation
	if v > 1 {
		v = 1
	}
	return weightSocialProof * v
}

// priceCompatibility is full weight for free listings and decays as price
// rises, faster for more price-sensitive users. Floor 0.
func priceCompatibility(price, sensitivity float64) float64 {
	if price <= 0 {
		return weightPriceCompat
	}
	if sensitivity < 0 {
		sensitivity = 0
	}
	if sensitivity > 1 {
		sensitivity = 1
	}
	v := weightPriceCompat * (1 - (price*sensitivity)/200)
	if v < 0 {
		return 0
	}
	return v
}

// primaryReason picks the largest factor; equal contributions resolve by the
// fixed factor priority order, so an all-zero breakdown reports direct_match
// by convention (callers check Breakdown.IsZero before trusting it).
func primaryReason(b Breakdown) Reason {
	best := ReasonDirectMatch
	bestVal := b.DirectMatch
	for _, f := range b.Factors() {
		if f.Value > bestVal {
			best = f.Reason
			bestVal = f.Value
		}
	}
	return best
}

package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"collablearn/internal/config"
	"collablearn/internal/domain/recommend"
	"collablearn/internal/pipeline"
	"collablearn/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

type RecommendationParams struct {
	Limit int
	// Partial permits a best-effort result if the caller's context is
	// cancelled after ranking has completed. Default is to fail.
	Partial bool
}

type ProfileSummary struct {
	PreferredCategories []recommend.CategoryWeight
	SkillLevel          string
	LearningGoals       []string
}

type RunMetadata struct {
	TotalAnalyzed int
	Qualifying    int
	GeneratedAt   time.Time
}

type RecommendationResult struct {
	Items          []recommend.ScoredCandidate
	ProfileSummary ProfileSummary
	Metadata       RunMetadata
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) (RecommendationResult, error)
}

type Recommendation struct {
	users    repository.UserRepository
	skills   repository.UserSkillRepository
	bookings repository.BookingRepository
	posts    repository.PostRepository
	listings repository.ListingRepository

	cache  RecommendationCache
	engine config.EngineConfig
	logger *log.Logger
	now    func() time.Time
}

func NewRecommendationUsecase(
	users repository.UserRepository,
	skills repository.UserSkillRepository,
	bookings repository.BookingRepository,
	posts repository.PostRepository,
	listings repository.ListingRepository,
	cache RecommendationCache,
	engine config.EngineConfig,
	logger *log.Logger,
) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{
		users:    users,
		skills:   skills,
		bookings: bookings,
		posts:    posts,
		listings: listings,
		cache:    cache,
		engine:   engine,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Recommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) (RecommendationResult, error) {
	if userID == uuid.Nil {
		return RecommendationResult{}, ErrUnauthorized
	}

	limit := u.normalizeLimit(params.Limit)

	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}
	if !exists {
		return RecommendationResult{}, ErrUserNotFound
	}

	poolVersion := u.poolVersion(ctx)
	cacheKey := RecommendationsCacheKey(userID, poolVersion, limit)
	if u.cache != nil && poolVersion > 0 {
		var cached RecommendationResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	profile, err := u.buildProfile(ctx, userID)
	if err != nil {
		return RecommendationResult{}, err
	}

	pool, err := u.listings.FindCandidatePool(ctx, userID)
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}

	if err := ctx.Err(); err != nil {
		return RecommendationResult{}, err
	}

	scored := u.scoreCandidates(ctx, pool, profile)
	totalAnalyzed := len(scored)

	if err := ctx.Err(); err != nil {
		return RecommendationResult{}, err
	}

	qualified := recommend.Qualify(scored)
	ranked := recommend.Rank(qualified)

	// past this point a cancelled caller may still opt into partial output
	if err := ctx.Err(); err != nil && !params.Partial {
		return RecommendationResult{}, err
	}

	diversified := recommend.Diversify(ranked, limit)
	adjusted := recommend.ApplyTrending(diversified)

	result := u.assemble(adjusted, userID, limit, profile, totalAnalyzed, len(qualified))

	if u.cache != nil && poolVersion > 0 && ctx.Err() == nil {
		if err := u.cache.SetJSON(ctx, cacheKey, result, u.engine.CacheTTL); err != nil {
			u.logger.Printf("[Recommend] cache set failed | key=%s err=%v", cacheKey, err)
		}
	}

	return result, nil
}

func (u *Recommendation) normalizeLimit(limit int) int {
	def := u.engine.DefaultLimit
	if def <= 0 {
		def = 20
	}
	max := u.engine.MaxLimit
	if max <= 0 {
		max = 50
	}
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func (u *Recommendation) poolVersion(ctx context.Context) int64 {
	v, err := u.listings.PoolVersion(ctx)
	if err != nil {
		u.logger.Printf("[Recommend] pool version unavailable, caching disabled for run | err=%v", err)
		return 0
	}
	return v
}

func (u *Recommendation) buildProfile(ctx context.Context, userID uuid.UUID) (recommend.UserProfile, error) {
	ownedRows, err := u.skills.FindOwnedByUserID(ctx, userID)
	if err != nil {
		return recommend.UserProfile{}, ErrInternal
	}
	goals, err := u.skills.FindLearningGoals(ctx, userID)
	if err != nil {
		return recommend.UserProfile{}, ErrInternal
	}
	bookingRows, err := u.bookings.FindCompletedByUserID(ctx, userID)
	if err != nil {
		return recommend.UserProfile{}, ErrInternal
	}
	postCategories, err := u.posts.FindCategoriesByUserID(ctx, userID)
	if err != nil {
		return recommend.UserProfile{}, ErrInternal
	}

	owned := make([]recommend.OwnedSkill, 0, len(ownedRows))
	for _, s := range ownedRows {
		owned = append(owned, recommend.OwnedSkill{
			Name:     s.Name,
			Category: s.Category,
			Level:    recommend.ParseLevel(s.Level),
		})
	}
	bookings := make([]recommend.CompletedBooking, 0, len(bookingRows))
	for _, b := range bookingRows {
		bookings = append(bookings, recommend.CompletedBooking{
			Category:     b.Category,
			InstructorID: b.InstructorID,
			Price:        b.Price,
		})
	}
	posts := make([]recommend.Post, 0, len(postCategories))
	for _, c := range postCategories {
		posts = append(posts, recommend.Post{Category: c})
	}

	return recommend.BuildProfile(owned, bookings, posts, goals), nil
}

// scoreCandidates fans scoring out across a bounded worker pool. Each task
// owns exactly one slot of the results slice, so no locking is needed, and
// the total ordering applied afterwards makes scheduling invisible.
func (u *Recommendation) scoreCandidates(ctx context.Context, pool []repository.Listing, profile recommend.UserProfile) []recommend.ScoredCandidate {
	if len(pool) == 0 {
		return nil
	}

	workers := u.engine.ScoreWorkers
	if workers <= 0 {
		workers = 8
	}
	if workers > len(pool) {
		workers = len(pool)
	}

	results := make([]recommend.ScoredCandidate, len(pool))
	ok := make([]bool, len(pool))

	wp := pipeline.NewWorkerPool(workers, len(pool))
	out := wp.Run(ctx)

	for i := range pool {
		i := i
		listing := toCandidateListing(pool[i])
		wp.Submit(func(ctx context.Context) error {
			sc, err := recommend.Score(listing, profile)
			if err != nil {
				if errors.Is(err, recommend.ErrMissingInstructor) {
					u.logger.Printf("[Recommend] skipping malformed candidate | listing_id=%s err=%v", listing.ID, err)
					return nil
				}
				return err
			}
			results[i] = sc
			ok[i] = true
			return nil
		})
	}
	wp.Close()

	for res := range out {
		if res.Err != nil {
			u.logger.Printf("[Recommend] scoring task failed | err=%v", res.Err)
		}
	}

	scored := make([]recommend.ScoredCandidate, 0, len(pool))
	for i := range results {
		if ok[i] {
			scored = append(scored, results[i])
		}
	}
	return scored
}

func (u *Recommendation) assemble(items []recommend.ScoredCandidate, userID uuid.UUID, limit int, profile recommend.UserProfile, totalAnalyzed, qualifying int) RecommendationResult {
	// belt-and-suspenders: the pool loader already excludes the caller's
	// listings, but a misbehaving loader must never surface them
	kept := make([]recommend.ScoredCandidate, 0, len(items))
	for _, sc := range items {
		if sc.Listing.Instructor.ID == userID {
			continue
		}
		kept = append(kept, sc)
		if len(kept) == limit {
			break
		}
	}

	return RecommendationResult{
		Items: kept,
		ProfileSummary: ProfileSummary{
			PreferredCategories: profile.PreferredCategories,
			SkillLevel:          profile.SkillLevel.String(),
			LearningGoals:       profile.LearningGoals,
		},
		Metadata: RunMetadata{
			TotalAnalyzed: totalAnalyzed,
			Qualifying:    qualifying,
			GeneratedAt:   u.now().UTC(),
		},
	}
}

func toCandidateListing(l repository.Listing) recommend.CandidateListing {
	return recommend.CandidateListing{
		ID:          l.ID,
		Name:        l.Name,
		Category:    l.Category,
		SubCategory: l.SubCategory,
		Tags:        l.Tags,
		Instructor: recommend.Instructor{
			ID:                l.InstructorID,
			Rating:            l.InstructorRating,
			SessionsCompleted: l.InstructorSessions,
			AccountAgeDays:    l.InstructorAgeDays,
		},
		Price:      l.Price,
		Level:      recommend.ParseLevel(l.Level),
		CreatedAt:  l.CreatedAt,
		IsTrending: l.IsTrending,
	}
}

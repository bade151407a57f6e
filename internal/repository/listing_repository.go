package repository

import (
	"context"
	"time"

	"collablearn/internal/database"

	"github.com/google/uuid"
)

// trending = at least this many bookings on the listing in the last 7 days
const trendingMinRecentBookings = 3

type Listing struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	Name         string
	Category     string
	SubCategory  string
	Tags         []string
	Price        float64
	Level        string
	CreatedAt    time.Time

	InstructorRating   float64
	InstructorSessions int
	InstructorAgeDays  int
	IsTrending         bool
}

// ListingRepository is the candidate pool loader: published, actively
// offered listings with the requesting user's own listings excluded at the
// source, and trending flags computed from recent booking velocity.
type ListingRepository interface {
	FindCandidatePool(ctx context.Context, excludeUserID uuid.UUID) ([]Listing, error)
	PoolVersion(ctx context.Context) (int64, error)
}

type PostgresListingRepository struct {
	db database.DB
}

func NewPostgresListingRepository(db database.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

func (r *PostgresListingRepository) FindCandidatePool(ctx context.Context, excludeUserID uuid.UUID) ([]Listing, error) {
	rows, err := r.db.Query(ctx,
		`SELECT l.id, l.user_id, l.name, l.category, COALESCE(l.sub_category, ''), l.tags,
		        COALESCE(l.price, 0), COALESCE(l.level, 'beginner'), l.created_at,
		        COALESCE(u.rating, 0),
		        COALESCE(s.sessions_completed, 0),
		        GREATEST(0, EXTRACT(EPOCH FROM (now() - u.created_at)) / 86400)::INT,
		        COALESCE(t.recent_bookings, 0) >= $2
		 FROM listings l
		 JOIN users u ON u.id = l.user_id
		 LEFT JOIN LATERAL (
		 	SELECT COUNT(*) AS sessions_completed
		 	FROM bookings b
		 	WHERE b.instructor_id = l.user_id AND b.status = 'completed'
		 ) s ON TRUE
		 LEFT JOIN LATERAL (
		 	SELECT COUNT(*) AS recent_bookings
		 	FROM bookings b
		 	WHERE b.listing_id = l.id AND b.created_at >= now() - INTERVAL '7 days'
		 ) t ON TRUE
		 WHERE l.is_published AND l.is_offering AND l.user_id <> $1
		 ORDER BY l.created_at DESC`,
		excludeUserID, trendingMinRecentBookings,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Listing, 0)
	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID, &l.InstructorID, &l.Name, &l.Category, &l.SubCategory, &l.Tags,
			&l.Price, &l.Level, &l.CreatedAt,
			&l.InstructorRating, &l.InstructorSessions, &l.InstructorAgeDays, &l.IsTrending,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PoolVersion changes whenever any listing changes; cached recommendation
// results are keyed on it so stale pools never serve.
func (r *PostgresListingRepository) PoolVersion(ctx context.Context) (int64, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(EXTRACT(EPOCH FROM MAX(updated_at)), 0)::BIGINT FROM listings`,
	)
	var v int64
	if err := row.Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

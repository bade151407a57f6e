package repository

import (
	"context"
	"time"

	"collablearn/internal/database"

	"github.com/google/uuid"
)

type CompletedBooking struct {
	Category     string
	InstructorID uuid.UUID
	Price        float64
	CompletedAt  *time.Time
}

// BookingRepository exposes only completed bookings; pending or cancelled
// bookings carry no preference signal.
type BookingRepository interface {
	FindCompletedByUserID(ctx context.Context, userID uuid.UUID) ([]CompletedBooking, error)
}

type PostgresBookingRepository struct {
	db database.DB
}

func NewPostgresBookingRepository(db database.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db}
}

func (r *PostgresBookingRepository) FindCompletedByUserID(ctx context.Context, userID uuid.UUID) ([]CompletedBooking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, instructor_id, COALESCE(price, 0), completed_at
		 FROM bookings
		 WHERE user_id = $1 AND status = 'completed'
		 ORDER BY completed_at DESC NULLS LAST`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CompletedBooking, 0)
	for rows.Next() {
		var b CompletedBooking
		if err := rows.Scan(&b.Category, &b.InstructorID, &b.Price, &b.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

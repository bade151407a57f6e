package seeder

import (
	"context"

	"collablearn/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

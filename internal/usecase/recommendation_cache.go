package usecase

import (
	"context"
	"time"
)

// RecommendationCache is an explicitly-scoped external cache; the engine
// never depends on it for correctness and stays a pure function of its
// inputs.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

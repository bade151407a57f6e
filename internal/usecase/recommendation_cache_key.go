package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

type recommendationsCacheKeyInput struct {
	UserID      uuid.UUID `json:"user_id"`
	PoolVersion int64     `json:"pool_version"`
	Limit       int       `json:"limit"`
}

func RecommendationsCacheKey(userID uuid.UUID, poolVersion int64, limit int) string {
	in := recommendationsCacheKeyInput{
		UserID:      userID,
		PoolVersion: poolVersion,
		Limit:       limit,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "recommendations:" + hex.EncodeToString(sum[:])
}

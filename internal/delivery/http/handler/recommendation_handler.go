package handler

import (
	"errors"
	"strconv"

	"collablearn/internal/delivery/http/dto"
	"collablearn/internal/delivery/http/middleware"
	"collablearn/internal/pkg/response"
	"collablearn/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be a positive integer", nil, err)
	}

	partial := c.Query("partial") == "true"

	result, err := h.uc.GetRecommendations(c.Context(), userID, usecase.RecommendationParams{
		Limit:   limit,
		Partial: partial,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		case errors.Is(err, usecase.ErrUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Recommendations generated", dto.FromRecommendationResult(result))
}

func parseQueryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

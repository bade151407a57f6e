package v1

import (
	"log"

	"collablearn/internal/config"
	"collablearn/internal/database"
	"collablearn/internal/delivery/http/handler"
	"collablearn/internal/delivery/http/middleware"
	"collablearn/internal/infrastructure/cache"
	"collablearn/internal/pkg/jwt"
	"collablearn/internal/repository"
	"collablearn/internal/usecase"
	"collablearn/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresUserSkillRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)
	listingRepo := repository.NewPostgresListingRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)

	var recCache usecase.RecommendationCache
	if redisCache != nil {
		recCache = redisCache
	}
	recUC := usecase.NewRecommendationUsecase(
		userRepo, skillRepo, bookingRepo, postRepo, listingRepo,
		recCache, cfg.Engine, logger,
	)

	authHandler := handler.NewAuthHandler(authUC)
	recHandler := handler.NewRecommendationHandler(recUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	recGroup := protected.Group("/recommendations")
	recHandler.RegisterRoutes(recGroup)

	if hub != nil {
		wsHandler := ws.NewHandler(hub, logger)
		protected.Get("/ws/listings", wsHandler.HandleListingsWS)
	}
}

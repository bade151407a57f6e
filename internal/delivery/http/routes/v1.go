package routes

import (
	"log"

	"collablearn/internal/config"
	"collablearn/internal/database"
	v1 "collablearn/internal/delivery/http/routes/v1"
	"collablearn/internal/infrastructure/cache"
	"collablearn/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redisCache, hub, logger)
}

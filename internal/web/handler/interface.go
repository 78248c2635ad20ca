package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/config"
)

// Service is the interface for a web handler service.
// authn guards the routes that need an authenticated user, public handlers ignore it.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authn fiber.Handler) error
}

package quorum

import (
	"go-unionreg/internal/config"
	"go-unionreg/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type QuorumApi struct {
	controller *QuorumController
	config     *config.Config
}

func NewQuorumApi(controller *QuorumController, config *config.Config) *QuorumApi {
	return &QuorumApi{
		controller: controller,
		config:     config,
	}
}

func (h *QuorumApi) Setup(app *fiber.App) {
	quorum := app.Group("/api/quorum", middleware.AuthMiddleware(h.config.SkipAuth))

	quorum.Post("/evaluate", h.controller.Evaluate)
}

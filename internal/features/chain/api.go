package chain

import (
	"go-unionreg/internal/config"
	"go-unionreg/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ChainApi struct {
	controller *ChainController
	config     *config.Config
}

func NewChainApi(controller *ChainController, config *config.Config) *ChainApi {
	return &ChainApi{
		controller: controller,
		config:     config,
	}
}

func (h *ChainApi) Setup(app *fiber.App) {
	chains := app.Group("/api/chains", middleware.AuthMiddleware(h.config.SkipAuth))

	chains.Get("/", h.controller.ListChains)
	chains.Get("/:type", h.controller.GetChain)
}

package chain

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ChainController struct {
	Registry *Registry
}

func NewChainController(registry *Registry) *ChainController {
	return &ChainController{Registry: registry}
}

// ListChains godoc
// @Summary List approval chains
// @Description List the authority chain configured for every workflow type
// @Tags chains
// @Produce json
// @Success 200 {array} Definition
// @Router /api/chains [get]
func (c *ChainController) ListChains(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Registry.List())
}

// GetChain godoc
// @Summary Get approval chain
// @Description Get the authority chain for one workflow type
// @Tags chains
// @Produce json
// @Param type path string true "Workflow type"
// @Success 200 {object} Definition
// @Failure 404 {object} map[string]string "Unknown workflow type"
// @Router /api/chains/{type} [get]
func (c *ChainController) GetChain(ctx *fiber.Ctx) error {
	def, err := c.Registry.GetChain(ctx.Params("type"))
	if err != nil {
		if errors.Is(err, ErrUnknownWorkflowType) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(def)
}

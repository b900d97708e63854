package quorum

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type QuorumController struct{}

func NewQuorumController() *QuorumController {
	return &QuorumController{}
}

// Evaluate godoc
// @Summary Evaluate quorum
// @Description Compute turnout and whether the required participation threshold is met
// @Tags quorum
// @Accept json
// @Produce json
// @Param query body Query true "Quorum query"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 422 {object} map[string]string "Invalid quorum input"
// @Router /api/quorum/evaluate [post]
func (c *QuorumController) Evaluate(ctx *fiber.Ctx) error {
	var input Query
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := EvaluateQuery(input)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
				"field": inputErr.Field,
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"turnout_percentage": result.TurnoutPercentage,
		"display_turnout":    result.DisplayTurnout(),
		"is_met":             result.IsMet,
		"shortfall_count":    result.ShortfallCount,
	})
}

package review

import (
	"go-unionreg/internal/config"
	"go-unionreg/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReviewApi struct {
	controller *ReviewController
	config     *config.Config
}

func NewReviewApi(controller *ReviewController, config *config.Config) *ReviewApi {
	return &ReviewApi{
		controller: controller,
		config:     config,
	}
}

func (h *ReviewApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	submissions := app.Group("/api/submissions", auth)
	submissions.Post("/", h.controller.CreateSubmission)
	submissions.Get("/:id/review", h.controller.GetReviewState)
	submissions.Post("/:id/review", h.controller.BeginReview)
	submissions.Post("/:id/decisions", h.controller.Decide)
	submissions.Post("/:id/issues", h.controller.AddIssue)
	submissions.Get("/:id/issues", h.controller.ListIssues)
	submissions.Post("/:id/import", h.controller.ImportMembershipList)

	issues := app.Group("/api/issues", auth)
	issues.Post("/:id/resolve", h.controller.ResolveIssue)
}

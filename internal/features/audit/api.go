package audit

import (
	"go-unionreg/internal/config"
	"go-unionreg/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// AuditReaderRoles may read the full audit trail
var AuditReaderRoles = []string{"registrar", "deputy_registrar", "electoral_commission"}

type AuditApi struct {
	controller *AuditController
	config     *config.Config
}

func NewAuditApi(controller *AuditController, config *config.Config) *AuditApi {
	return &AuditApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	audit := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth))

	audit.Get("/", middleware.RequireRole(AuditReaderRoles...), h.controller.ListLogs)
}

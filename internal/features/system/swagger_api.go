package system

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type SwaggerApi struct{}

func NewSwaggerApi() *SwaggerApi {
	return &SwaggerApi{}
}

// Setup serves the swagger UI and doc.json registered by the docs package
func (h *SwaggerApi) Setup(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
}

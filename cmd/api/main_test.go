package main

import (
	"net/http/httptest"
	"testing"

	"go-unionreg/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

func TestDependencyGraph(t *testing.T) {
	if err := fx.ValidateApp(appOptions()); err != nil {
		t.Fatalf("fx.ValidateApp() error = %v", err)
	}
}

func TestFiberServerErrorHandler(t *testing.T) {
	app := NewFiberServer(&config.Config{MaxUploadMB: 1})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusTeapot)
	}
}

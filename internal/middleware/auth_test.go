package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"go-unionreg/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

func newAuthApp(skipAuth bool) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(skipAuth), func(c *fiber.Ctx) error {
		claims, ok := CurrentClaims(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.UserID + "/" + claims.Role)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetSecret("middleware-secret")
	defer utils.SetSecret("secret")

	token, err := utils.GenerateToken("user-7", "oir_officer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name     string
		skipAuth bool
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{name: "missing header", wantCode: fiber.StatusUnauthorized},
		{name: "bad scheme", headers: map[string]string{"Authorization": "Token abc"}, wantCode: fiber.StatusUnauthorized},
		{name: "bad token", headers: map[string]string{"Authorization": "Bearer abc"}, wantCode: fiber.StatusUnauthorized},
		{name: "valid token", headers: map[string]string{"Authorization": "Bearer " + token}, wantCode: fiber.StatusOK, wantBody: "user-7/oir_officer"},
		{name: "dev identity", skipAuth: true, headers: map[string]string{DevRoleHeader: "registrar"}, wantCode: fiber.StatusOK, wantBody: "dev-admin-id/registrar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := newAuthApp(tt.skipAuth).Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/audit", AuthMiddleware(true), RequireRole("registrar", "deputy_registrar"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		role     string
		wantCode int
	}{
		{role: "registrar", wantCode: fiber.StatusOK},
		{role: "deputy_registrar", wantCode: fiber.StatusOK},
		{role: "oir_officer", wantCode: fiber.StatusForbidden},
		{role: "", wantCode: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/audit", nil)
		req.Header.Set(DevRoleHeader, tt.role)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != tt.wantCode {
			t.Errorf("role %q: status = %d, want %d", tt.role, resp.StatusCode, tt.wantCode)
		}
	}
}

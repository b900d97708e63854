package quorum

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEvaluateHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/api/quorum/evaluate", NewQuorumController().Evaluate)

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantMet   bool
		wantField string
	}{
		{name: "met", body: `{"eligible_count":4300,"present_count":3225,"required_percentage":50}`, wantCode: fiber.StatusOK, wantMet: true},
		{name: "not met", body: `{"eligible_count":100,"present_count":49,"required_percentage":50}`, wantCode: fiber.StatusOK},
		{name: "invalid", body: `{"eligible_count":10,"present_count":11,"required_percentage":50}`, wantCode: fiber.StatusUnprocessableEntity, wantField: "present_count"},
		{name: "malformed", body: `{"eligible_count":`, wantCode: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/quorum/evaluate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			var body map[string]interface{}
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if tt.wantCode == fiber.StatusOK && body["is_met"] != tt.wantMet {
				t.Errorf("is_met = %v, want %v", body["is_met"], tt.wantMet)
			}
			if tt.wantField != "" && body["field"] != tt.wantField {
				t.Errorf("field = %v, want %s", body["field"], tt.wantField)
			}
		})
	}
}

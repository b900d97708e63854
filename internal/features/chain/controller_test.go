package chain

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"go-unionreg/internal/config"

	"github.com/gofiber/fiber/v2"
)

func TestChainRoutes(t *testing.T) {
	app := fiber.New()
	NewChainApi(NewChainController(NewDefaultRegistry()), &config.Config{SkipAuth: true}).Setup(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/chains", nil))
	if err != nil {
		t.Fatal(err)
	}
	var defs []Definition
	if err := json.NewDecoder(resp.Body).Decode(&defs); err != nil {
		t.Fatal(err)
	}
	if len(defs) != 4 || defs[0].WorkflowType != CandidateVetting {
		t.Fatalf("chains = %+v", defs)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/chains/"+ElectionResult, nil))
	if err != nil {
		t.Fatal(err)
	}
	var def Definition
	if err := json.NewDecoder(resp.Body).Decode(&def); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK || def.QuorumPercentage != 50 || len(def.Steps) != 2 {
		t.Fatalf("election chain = %d %+v", resp.StatusCode, def)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/chains/unknown", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown chain status = %d, want 404", resp.StatusCode)
	}
}

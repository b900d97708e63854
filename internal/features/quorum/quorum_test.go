package quorum

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluateWholePercentBoundaries(t *testing.T) {
	for eligible := 1; eligible <= 200; eligible++ {
		for present := 0; present <= eligible; present++ {
			if present*100%eligible != 0 {
				continue
			}
			required := float64(present * 100 / eligible)
			got, err := Evaluate(eligible, present, required)
			if err != nil {
				t.Fatalf("Evaluate(%d, %d, %v) error = %v", eligible, present, required, err)
			}
			if !got.IsMet || got.ShortfallCount != 0 || got.TurnoutPercentage != required {
				t.Fatalf("Evaluate(%d, %d, %v) = %+v, want met at exactly %v", eligible, present, required, got, required)
			}
			if present > 0 {
				below, err := Evaluate(eligible, present-1, required)
				if err != nil {
					t.Fatal(err)
				}
				if below.IsMet || below.ShortfallCount < 1 {
					t.Fatalf("Evaluate(%d, %d, %v) = %+v, want unmet with a shortfall", eligible, present-1, required, below)
				}
			}
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		eligible      int
		present       int
		required      float64
		wantTurnout   float64
		wantMet       bool
		wantShortfall int
	}{
		{name: "boundary is inclusive", eligible: 100, present: 50, required: 50, wantTurnout: 50, wantMet: true, wantShortfall: 0},
		{name: "one short", eligible: 100, present: 49, required: 50, wantTurnout: 49, wantMet: false, wantShortfall: 1},
		{name: "large union", eligible: 4300, present: 3225, required: 50, wantTurnout: 75, wantMet: true, wantShortfall: 0},
		{name: "shortfall rounds up", eligible: 7, present: 2, required: 60, wantTurnout: 200.0 / 7, wantMet: false, wantShortfall: 3},
		{name: "fractional requirement", eligible: 3, present: 1, required: 40, wantTurnout: 100.0 / 3, wantMet: false, wantShortfall: 1},
		{name: "zero requirement", eligible: 10, present: 0, required: 0, wantTurnout: 0, wantMet: true, wantShortfall: 0},
		{name: "full attendance", eligible: 12, present: 12, required: 100, wantTurnout: 100, wantMet: true, wantShortfall: 0},
		{name: "exact 29 percent", eligible: 100, present: 29, required: 29, wantTurnout: 29, wantMet: true, wantShortfall: 0},
		{name: "exact 57 percent", eligible: 100, present: 57, required: 57, wantTurnout: 57, wantMet: true, wantShortfall: 0},
		{name: "exact 58 percent of 50", eligible: 50, present: 29, required: 58, wantTurnout: 58, wantMet: true, wantShortfall: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.eligible, tt.present, tt.required)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if math.Abs(got.TurnoutPercentage-tt.wantTurnout) > 1e-9 {
				t.Errorf("TurnoutPercentage = %v, want %v", got.TurnoutPercentage, tt.wantTurnout)
			}
			if got.IsMet != tt.wantMet {
				t.Errorf("IsMet = %v, want %v", got.IsMet, tt.wantMet)
			}
			if got.ShortfallCount != tt.wantShortfall {
				t.Errorf("ShortfallCount = %d, want %d", got.ShortfallCount, tt.wantShortfall)
			}
		})
	}
}

func TestEvaluateUsesUnroundedTurnout(t *testing.T) {
	// 2/3 = 66.666...% rounds to 66.7 for display but must not satisfy 66.7
	got, err := Evaluate(3, 2, 66.7)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.IsMet {
		t.Errorf("IsMet = true, comparison must use the unrounded turnout")
	}
	if got.DisplayTurnout() != 66.7 {
		t.Errorf("DisplayTurnout() = %v, want 66.7", got.DisplayTurnout())
	}
}

func TestEvaluateInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		eligible  int
		present   int
		required  float64
		wantField string
	}{
		{name: "zero eligible", eligible: 0, present: 0, required: 50, wantField: "eligible_count"},
		{name: "negative eligible", eligible: -5, present: 0, required: 50, wantField: "eligible_count"},
		{name: "negative present", eligible: 10, present: -1, required: 50, wantField: "present_count"},
		{name: "present exceeds eligible", eligible: 10, present: 11, required: 50, wantField: "present_count"},
		{name: "requirement above 100", eligible: 10, present: 5, required: 100.5, wantField: "required_percentage"},
		{name: "negative requirement", eligible: 10, present: 5, required: -1, wantField: "required_percentage"},
		{name: "NaN requirement", eligible: 10, present: 5, required: math.NaN(), wantField: "required_percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.eligible, tt.present, tt.required)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Evaluate() error = %v, want ErrInvalidInput", err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) || inputErr.Field != tt.wantField {
				t.Errorf("error field = %v, want %s", err, tt.wantField)
			}
		})
	}
}

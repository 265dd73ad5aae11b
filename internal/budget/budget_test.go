package budget

import (
	"math"
	"testing"

	"cartsync/internal/model"
)

func price(v float64) *float64 { return &v }

func tripItems() []model.ListItem {
	return []model.ListItem{
		{Name: "Milk", Quantity: 1, Unit: "each", EstimatedPrice: 4.50, Status: model.StatusInCart, ActualPrice: price(4.20)},
		{Name: "Eggs", Quantity: 2, Unit: "each", EstimatedPrice: 3.00, Status: model.StatusToBuy},
		{Name: "Chips", Quantity: 1, Unit: "each", EstimatedPrice: 2.50, Status: model.StatusSkipped},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRunningTotal(t *testing.T) {
	// Milk at the observed actual price, Eggs at estimate × 2, Chips skipped.
	got := RunningTotal(tripItems())
	if !almostEqual(got, 10.20) {
		t.Errorf("RunningTotal = %v, want 10.20", got)
	}
}

func TestSpent(t *testing.T) {
	got := Spent(tripItems())
	if !almostEqual(got, 4.20) {
		t.Errorf("Spent = %v, want 4.20", got)
	}
}

func TestRunningTotalEmptyAndAllSkipped(t *testing.T) {
	if got := RunningTotal(nil); got != 0 {
		t.Errorf("RunningTotal(nil) = %v, want 0", got)
	}

	skipped := []model.ListItem{
		{Name: "A", Quantity: 3, EstimatedPrice: 5, Status: model.StatusSkipped},
		{Name: "B", Quantity: 1, EstimatedPrice: 2, Status: model.StatusSkipped},
	}
	if got := RunningTotal(skipped); got != 0 {
		t.Errorf("RunningTotal(all skipped) = %v, want 0", got)
	}
	if got := Spent(skipped); got != 0 {
		t.Errorf("Spent(all skipped) = %v, want 0", got)
	}
}

func TestEvaluateBands(t *testing.T) {
	tests := []struct {
		name       string
		budget     float64
		spent      float64
		wantBand   Band
		wantOver   bool
		wantPct    float64
		wantRemain float64
	}{
		{"on track at 50%", 10.00, 5.00, BandOnTrack, false, 50, 5.00},
		{"boundary 70%", 10.00, 7.00, BandOnTrack, false, 70, 3.00},
		{"watch at 80%", 10.00, 8.00, BandWatch, false, 80, 2.00},
		{"almost at 95%", 10.00, 9.50, BandAlmost, false, 95, 0.50},
		{"boundary 100%", 10.00, 10.00, BandAlmost, false, 100, 0},
		{"over at 110%", 10.00, 11.00, BandOver, true, 100, -1.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Evaluate(&tt.budget, tt.spent)
			if h.Band != tt.wantBand {
				t.Errorf("Band = %s, want %s", h.Band, tt.wantBand)
			}
			if h.OverBudget != tt.wantOver {
				t.Errorf("OverBudget = %v, want %v", h.OverBudget, tt.wantOver)
			}
			if !almostEqual(h.PercentUsed, tt.wantPct) {
				t.Errorf("PercentUsed = %v, want %v", h.PercentUsed, tt.wantPct)
			}
			if !almostEqual(h.Remaining, tt.wantRemain) {
				t.Errorf("Remaining = %v, want %v", h.Remaining, tt.wantRemain)
			}
		})
	}
}

func TestEvaluateKeepsRawPercentOverClamp(t *testing.T) {
	b := 10.00
	h := Evaluate(&b, 11.00)
	if !almostEqual(h.RawPercent, 110) {
		t.Errorf("RawPercent = %v, want 110", h.RawPercent)
	}
	if h.BandLabel != "Over budget!" {
		t.Errorf("BandLabel = %q, want %q", h.BandLabel, "Over budget!")
	}
}

func TestEvaluateNoBudget(t *testing.T) {
	h := Evaluate(nil, 4.20)
	if h.Band != BandNone {
		t.Errorf("Band = %s, want %s", h.Band, BandNone)
	}
	if h.PercentUsed != 0 || h.OverBudget {
		t.Errorf("no-budget health should be neutral, got %+v", h)
	}
}

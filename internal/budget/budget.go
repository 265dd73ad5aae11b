package budget

import (
	"cartsync/internal/model"
)

// Band classifies budget health from the spent/budget ratio.
type Band string

const (
	BandOnTrack Band = "on_track"
	BandWatch   Band = "watch"
	BandAlmost  Band = "almost"
	BandOver    Band = "over"
	BandNone    Band = "none" // no budget set
)

// Label returns the user-facing band label.
func (b Band) Label() string {
	switch b {
	case BandOnTrack:
		return "On track"
	case BandWatch:
		return "Watch spending"
	case BandAlmost:
		return "Almost at limit"
	case BandOver:
		return "Over budget!"
	}
	return ""
}

// Health is the derived spent/budget state of a list.
//
// PercentUsed is clamped at 100 for progress-bar display; RawPercent
// keeps the unclamped value so the overage can still be shown.
// Remaining goes negative when over budget.
type Health struct {
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	PercentUsed float64 `json:"percent_used"`
	RawPercent  float64 `json:"raw_percent"`
	Remaining   float64 `json:"remaining"`
	OverBudget  bool    `json:"over_budget"`
	Band        Band    `json:"band"`
	BandLabel   string  `json:"band_label"`
}

// RunningTotal sums (actual ?? estimated) × quantity over all
// non-skipped items. Empty and all-skipped item sets total 0.
func RunningTotal(items []model.ListItem) float64 {
	var total float64
	for _, it := range items {
		if it.Status == model.StatusSkipped {
			continue
		}
		total += it.UnitPrice() * float64(it.Quantity)
	}
	return total
}

// Spent sums (actual ?? estimated) × quantity over in-cart items only.
func Spent(items []model.ListItem) float64 {
	var total float64
	for _, it := range items {
		if it.Status != model.StatusInCart {
			continue
		}
		total += it.UnitPrice() * float64(it.Quantity)
	}
	return total
}

// Evaluate derives budget health for the given budget and spent
// amount. A nil budget yields BandNone with zeroed percentages.
func Evaluate(budget *float64, spent float64) Health {
	if budget == nil || *budget <= 0 {
		return Health{Spent: spent, Band: BandNone}
	}

	raw := spent / *budget * 100
	percent := raw
	if percent > 100 {
		percent = 100
	}

	h := Health{
		Budget:      *budget,
		Spent:       spent,
		PercentUsed: percent,
		RawPercent:  raw,
		Remaining:   *budget - spent,
		OverBudget:  spent > *budget,
	}

	switch {
	case raw <= 70:
		h.Band = BandOnTrack
	case raw <= 90:
		h.Band = BandWatch
	case raw <= 100:
		h.Band = BandAlmost
	default:
		h.Band = BandOver
	}
	h.BandLabel = h.Band.Label()

	return h
}

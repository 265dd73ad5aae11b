package usecase

import (
	"context"

	"cartsync/internal/list"
	"cartsync/internal/model"
)

// QuickAdd parses free text like "2x Milk $4.50" into items and runs
// each through the optimistic add pipeline. One line, one item.
func (uc *implUseCase) QuickAdd(ctx context.Context, sc model.Scope, input list.QuickAddInput) ([]model.ListItem, error) {
	entries, err := uc.parser.Parse(input.Text)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, list.ErrEmptyName
	}

	out := make([]model.ListItem, 0, len(entries))
	for _, e := range entries {
		item, err := uc.AddItem(ctx, sc, list.AddItemInput{
			ListID:         input.ListID,
			Name:           e.Name,
			Quantity:       e.Quantity,
			Unit:           e.Unit,
			EstimatedPrice: e.EstimatedPrice,
		})
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"cartsync/internal/model"
	"cartsync/internal/share/repository"
)

// GetProfileByEmail resolves a public profile by email. Matching is
// exact; callers normalize the address first.
func (r *implRepository) GetProfileByEmail(ctx context.Context, sc model.Scope, email string) (model.Profile, error) {
	resp, _, err := r.rest(sc).From(tableProfiles).
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return model.Profile{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	var profiles []model.Profile
	if err := json.Unmarshal(resp, &profiles); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}
	if len(profiles) == 0 {
		return model.Profile{}, repository.ErrNotFound
	}
	return profiles[0], nil
}

package usecase

import (
	"context"

	"cartsync/internal/model"
	"cartsync/internal/share"
)

// GetSharedWithMe resolves every list shared with the current user,
// joined with list metadata. A share whose list is gone (deleted
// between the two reads) is silently skipped.
func (uc *implUseCase) GetSharedWithMe(ctx context.Context, sc model.Scope) ([]share.SharedList, error) {
	shares, err := uc.repo.ListSharesForUser(ctx, sc, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "share.usecase.GetSharedWithMe.ListSharesForUser: %v", err)
		return nil, err
	}
	if len(shares) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(shares))
	perms := make(map[string]model.Permission, len(shares))
	for _, s := range shares {
		ids = append(ids, s.ListID)
		perms[s.ListID] = s.Permission
	}

	lists, err := uc.listRepo.GetListsByIDs(ctx, sc, ids)
	if err != nil {
		uc.l.Errorf(ctx, "share.usecase.GetSharedWithMe.GetListsByIDs: %v", err)
		return nil, err
	}

	out := make([]share.SharedList, 0, len(lists))
	for _, ls := range lists {
		out = append(out, share.SharedList{
			List:       ls,
			Permission: perms[ls.ID],
		})
	}
	return out, nil
}

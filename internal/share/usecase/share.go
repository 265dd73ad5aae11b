package usecase

import (
	"context"
	"errors"
	"strings"

	"cartsync/internal/model"
	"cartsync/internal/share"
	"cartsync/internal/share/repository"
)

// ShareList invites a collaborator by email. The invitee must exist,
// must not be the caller, and must not already hold a share on the
// list.
func (uc *implUseCase) ShareList(ctx context.Context, sc model.Scope, input share.ShareListInput) (model.ListShare, error) {
	if !input.Permission.Valid() {
		return model.ListShare{}, share.ErrInvalidPermission
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" && strings.EqualFold(email, sc.Email) {
		return model.ListShare{}, share.ErrSelfShareNotAllowed
	}

	profile, err := uc.lookupProfile(ctx, sc, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ListShare{}, share.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "share.usecase.ShareList.lookupProfile: %v", err)
		return model.ListShare{}, err
	}

	// The email check above can miss when the caller's scope carries no
	// email, so compare ids as well.
	if profile.ID == sc.UserID {
		return model.ListShare{}, share.ErrSelfShareNotAllowed
	}

	_, err = uc.repo.GetShareByListAndUser(ctx, sc, input.ListID, profile.ID)
	if err == nil {
		return model.ListShare{}, share.ErrAlreadyShared
	}
	if !errors.Is(err, repository.ErrNotFound) {
		uc.l.Errorf(ctx, "share.usecase.ShareList.GetShareByListAndUser: %v", err)
		return model.ListShare{}, err
	}

	created, err := uc.repo.CreateShare(ctx, sc, repository.CreateShareOptions{
		ListID:             input.ListID,
		UserID:             profile.ID,
		Permission:         input.Permission,
		CollaboratorEmail:  profile.Email,
		CollaboratorName:   profile.FullName,
		CollaboratorAvatar: profile.AvatarURL,
	})
	if err != nil {
		uc.l.Errorf(ctx, "share.usecase.ShareList.CreateShare: %v", err)
		return model.ListShare{}, err
	}
	return created, nil
}

// GetSharedUsers returns every share on a list, earliest grant first.
func (uc *implUseCase) GetSharedUsers(ctx context.Context, sc model.Scope, listID string) ([]model.ListShare, error) {
	shares, err := uc.repo.ListShares(ctx, sc, listID)
	if err != nil {
		uc.l.Errorf(ctx, "share.usecase.GetSharedUsers.ListShares: %v", err)
		return nil, err
	}
	return shares, nil
}

// UpdateSharePermission changes a collaborator's access level.
func (uc *implUseCase) UpdateSharePermission(ctx context.Context, sc model.Scope, shareID string, permission model.Permission) (model.ListShare, error) {
	if !permission.Valid() {
		return model.ListShare{}, share.ErrInvalidPermission
	}

	updated, err := uc.repo.UpdateSharePermission(ctx, sc, shareID, permission)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ListShare{}, share.ErrShareNotFound
		}
		uc.l.Errorf(ctx, "share.usecase.UpdateSharePermission: %v", err)
		return model.ListShare{}, err
	}
	return updated, nil
}

// RemoveShare revokes a collaborator's access.
func (uc *implUseCase) RemoveShare(ctx context.Context, sc model.Scope, shareID string) error {
	if _, err := uc.repo.GetShare(ctx, sc, shareID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return share.ErrShareNotFound
		}
		uc.l.Errorf(ctx, "share.usecase.RemoveShare.GetShare: %v", err)
		return err
	}

	if err := uc.repo.DeleteShare(ctx, sc, shareID); err != nil {
		uc.l.Errorf(ctx, "share.usecase.RemoveShare.DeleteShare: %v", err)
		return err
	}
	return nil
}

// LeaveList removes the caller's own share on a list.
func (uc *implUseCase) LeaveList(ctx context.Context, sc model.Scope, listID string) error {
	own, err := uc.repo.GetShareByListAndUser(ctx, sc, listID, sc.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return share.ErrShareNotFound
		}
		uc.l.Errorf(ctx, "share.usecase.LeaveList.GetShareByListAndUser: %v", err)
		return err
	}

	if err := uc.repo.DeleteShare(ctx, sc, own.ID); err != nil {
		uc.l.Errorf(ctx, "share.usecase.LeaveList.DeleteShare: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) lookupProfile(ctx context.Context, sc model.Scope, email string) (model.Profile, error) {
	if p, ok := uc.profiles.Get(email); ok {
		return p, nil
	}

	p, err := uc.repo.GetProfileByEmail(ctx, sc, email)
	if err != nil {
		return model.Profile{}, err
	}
	uc.profiles.Add(email, p)
	return p, nil
}

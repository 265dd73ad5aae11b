package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cartsync/internal/list"
	"cartsync/internal/list/usecase"
	"cartsync/internal/model"
	"cartsync/internal/share"
	"cartsync/pkg/quickadd"
)

func TestFetchListsMergesOwnedAndShared(t *testing.T) {
	now := time.Now()
	repo := newMockRepo()
	repo.listOwnedFunc = func() ([]model.ShoppingList, error) {
		return []model.ShoppingList{
			{ID: "own-1", OwnerID: "user-1", Title: "Weekly", UpdatedAt: now},
			{ID: "tpl-1", OwnerID: "user-1", Title: "Staples", IsTemplate: true, UpdatedAt: now},
		}, nil
	}
	shareUC := &mockShareUC{
		sharedWithMeFunc: func() ([]share.SharedList, error) {
			return []share.SharedList{
				{List: model.ShoppingList{ID: "shared-1", OwnerID: "user-2", Title: "Party", UpdatedAt: now}, Permission: model.PermissionView},
			}, nil
		},
	}
	uc := usecase.New(&mockLogger{}, repo, shareUC, newSessions(), nil, quickadd.NewParser(""))
	sc := model.Scope{UserID: "user-1"}

	out, err := uc.FetchLists(context.Background(), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Degraded {
		t.Error("expected full fetch, not degraded")
	}
	if len(out.Owned) != 1 || out.Owned[0].ID != "own-1" {
		t.Errorf("expected one owned live list, got %+v", out.Owned)
	}
	if len(out.Shared) != 1 || out.Shared[0].List.ID != "shared-1" {
		t.Fatalf("expected one shared list, got %+v", out.Shared)
	}
	if !out.Shared[0].ReadOnly {
		t.Error("expected view permission to surface as read-only")
	}

	// Templates are kept out of the trip views entirely.
	tpls := uc.GetTemplates(context.Background(), sc)
	if len(tpls) != 1 || tpls[0].ID != "tpl-1" {
		t.Errorf("expected the template in the template view, got %+v", tpls)
	}
}

func TestFetchListsDegradesOnSharedFailure(t *testing.T) {
	repo := newMockRepo()
	repo.listOwnedFunc = func() ([]model.ShoppingList, error) {
		return []model.ShoppingList{{ID: "own-1", OwnerID: "user-1", Title: "Weekly"}}, nil
	}
	shareUC := &mockShareUC{
		sharedWithMeFunc: func() ([]share.SharedList, error) {
			return nil, errors.New("shared query timed out")
		},
	}
	uc := usecase.New(&mockLogger{}, repo, shareUC, newSessions(), nil, quickadd.NewParser(""))
	sc := model.Scope{UserID: "user-1"}

	out, err := uc.FetchLists(context.Background(), sc)
	if err != nil {
		t.Fatalf("expected degraded result, not failure: %v", err)
	}
	if !out.Degraded {
		t.Error("expected degraded flag set")
	}
	if len(out.Owned) != 1 {
		t.Errorf("expected owned lists despite shared failure, got %+v", out.Owned)
	}
	if len(out.Shared) != 0 {
		t.Errorf("expected no shared lists, got %+v", out.Shared)
	}
}

func TestCreateUpdateDeleteList(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)

	if _, err := uc.CreateList(context.Background(), sc, list.CreateListInput{Title: "  "}); !errors.Is(err, list.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}

	created, err := uc.CreateList(context.Background(), sc, list.CreateListInput{Title: "Weekly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	owned := uc.GetOwnedLists(context.Background(), sc)
	if len(owned) != 1 || owned[0].ID != created.ID {
		t.Errorf("expected created list cached, got %+v", owned)
	}

	if err := uc.DeleteList(context.Background(), sc, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := uc.GetOwnedLists(context.Background(), sc); len(got) != 0 {
		t.Errorf("expected cache cleared after delete, got %+v", got)
	}
}

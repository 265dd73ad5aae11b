package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cartsync/internal/list/repository"
	"cartsync/internal/model"
	"cartsync/internal/session"
	"cartsync/internal/share"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock repository recording writes, with overridable funcs.
type mockRepo struct {
	mu sync.Mutex

	listOwnedFunc  func() ([]model.ShoppingList, error)
	getListFunc    func(id string) (model.ShoppingList, error)
	listItemsFunc  func(listID string) ([]model.ListItem, error)
	createListFunc func(opt repository.CreateListOptions) (model.ShoppingList, error)
	updateListFunc func(opt repository.UpdateListOptions) (model.ShoppingList, error)
	createItemFunc func(opt repository.CreateItemOptions) (model.ListItem, error)
	updateItemFunc func(opt repository.UpdateItemOptions) (model.ListItem, error)

	createdLists []repository.CreateListOptions
	createdItems []repository.CreateItemOptions
	updatedItems []repository.UpdateItemOptions
	deletedItems []string
	deletedLists []string

	// itemPersisted signals once per durable item write.
	itemPersisted chan struct{}
}

func newMockRepo() *mockRepo {
	return &mockRepo{itemPersisted: make(chan struct{}, 64)}
}

func (m *mockRepo) signal() {
	select {
	case m.itemPersisted <- struct{}{}:
	default:
	}
}

func (m *mockRepo) waitPersist(timeout time.Duration) bool {
	select {
	case <-m.itemPersisted:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (m *mockRepo) ListOwned(ctx context.Context, sc model.Scope) ([]model.ShoppingList, error) {
	if m.listOwnedFunc != nil {
		return m.listOwnedFunc()
	}
	return nil, nil
}

func (m *mockRepo) GetList(ctx context.Context, sc model.Scope, id string) (model.ShoppingList, error) {
	if m.getListFunc != nil {
		return m.getListFunc(id)
	}
	return model.ShoppingList{}, repository.ErrNotFound
}

func (m *mockRepo) GetListsByIDs(ctx context.Context, sc model.Scope, ids []string) ([]model.ShoppingList, error) {
	return nil, nil
}

func (m *mockRepo) CreateList(ctx context.Context, sc model.Scope, opt repository.CreateListOptions) (model.ShoppingList, error) {
	m.mu.Lock()
	m.createdLists = append(m.createdLists, opt)
	n := len(m.createdLists)
	m.mu.Unlock()
	if m.createListFunc != nil {
		return m.createListFunc(opt)
	}
	return model.ShoppingList{
		ID:         fmt.Sprintf("list-%d", n),
		OwnerID:    opt.OwnerID,
		Title:      opt.Title,
		StoreID:    opt.StoreID,
		StoreName:  opt.StoreName,
		Budget:     opt.Budget,
		IsTemplate: opt.IsTemplate,
		UpdatedAt:  time.Now(),
	}, nil
}

func (m *mockRepo) UpdateList(ctx context.Context, sc model.Scope, opt repository.UpdateListOptions) (model.ShoppingList, error) {
	if m.updateListFunc != nil {
		return m.updateListFunc(opt)
	}
	return model.ShoppingList{}, repository.ErrNotFound
}

func (m *mockRepo) DeleteList(ctx context.Context, sc model.Scope, id string) error {
	m.mu.Lock()
	m.deletedLists = append(m.deletedLists, id)
	m.mu.Unlock()
	return nil
}

func (m *mockRepo) ListItems(ctx context.Context, sc model.Scope, listID string) ([]model.ListItem, error) {
	if m.listItemsFunc != nil {
		return m.listItemsFunc(listID)
	}
	return nil, nil
}

func (m *mockRepo) CreateItem(ctx context.Context, sc model.Scope, opt repository.CreateItemOptions) (model.ListItem, error) {
	m.mu.Lock()
	m.createdItems = append(m.createdItems, opt)
	n := len(m.createdItems)
	m.mu.Unlock()
	defer m.signal()
	if m.createItemFunc != nil {
		return m.createItemFunc(opt)
	}
	return model.ListItem{
		ID:             fmt.Sprintf("item-%d", n),
		ListID:         opt.ListID,
		Name:           opt.Name,
		CategoryID:     opt.CategoryID,
		Quantity:       opt.Quantity,
		Unit:           opt.Unit,
		EstimatedPrice: opt.EstimatedPrice,
		Status:         opt.Status,
		Tags:           opt.Tags,
		SortOrder:      opt.SortOrder,
		ClientToken:    opt.ClientToken,
	}, nil
}

func (m *mockRepo) UpdateItem(ctx context.Context, sc model.Scope, opt repository.UpdateItemOptions) (model.ListItem, error) {
	m.mu.Lock()
	m.updatedItems = append(m.updatedItems, opt)
	m.mu.Unlock()
	defer m.signal()
	if m.updateItemFunc != nil {
		return m.updateItemFunc(opt)
	}
	return model.ListItem{ID: opt.ID}, nil
}

func (m *mockRepo) DeleteItem(ctx context.Context, sc model.Scope, id string) error {
	m.mu.Lock()
	m.deletedItems = append(m.deletedItems, id)
	m.mu.Unlock()
	m.signal()
	return nil
}

func (m *mockRepo) createdItemOpts() []repository.CreateItemOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.CreateItemOptions, len(m.createdItems))
	copy(out, m.createdItems)
	return out
}

func (m *mockRepo) updatedItemOpts() []repository.UpdateItemOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.UpdateItemOptions, len(m.updatedItems))
	copy(out, m.updatedItems)
	return out
}

func (m *mockRepo) deletedItemIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deletedItems))
	copy(out, m.deletedItems)
	return out
}

// Mock share usecase; only the joined read is exercised here.
type mockShareUC struct {
	sharedWithMeFunc func() ([]share.SharedList, error)
}

func (m *mockShareUC) ShareList(ctx context.Context, sc model.Scope, input share.ShareListInput) (model.ListShare, error) {
	return model.ListShare{}, nil
}

func (m *mockShareUC) GetSharedUsers(ctx context.Context, sc model.Scope, listID string) ([]model.ListShare, error) {
	return nil, nil
}

func (m *mockShareUC) UpdateSharePermission(ctx context.Context, sc model.Scope, shareID string, permission model.Permission) (model.ListShare, error) {
	return model.ListShare{}, nil
}

func (m *mockShareUC) RemoveShare(ctx context.Context, sc model.Scope, shareID string) error {
	return nil
}

func (m *mockShareUC) LeaveList(ctx context.Context, sc model.Scope, listID string) error {
	return nil
}

func (m *mockShareUC) GetSharedWithMe(ctx context.Context, sc model.Scope) ([]share.SharedList, error) {
	if m.sharedWithMeFunc != nil {
		return m.sharedWithMeFunc()
	}
	return nil, nil
}

func newSessions() *session.Manager {
	return session.NewManager(&mockLogger{}, session.Config{MaxSessions: 16, TTL: time.Minute})
}

package reconciler_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	listRepository "cartsync/internal/list/repository"
	"cartsync/internal/model"
	"cartsync/internal/reconciler"
	"cartsync/internal/store"
	"cartsync/pkg/realtime"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// fakeStream feeds scripted events.
type fakeStream struct {
	events chan realtime.Event
	err    error
	closed atomic.Bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{events: make(chan realtime.Event, 16)}
}

func (f *fakeStream) Events() <-chan realtime.Event { return f.events }
func (f *fakeStream) Err() error                    { return f.err }
func (f *fakeStream) Close() error {
	f.closed.Store(true)
	return nil
}

type fakeDialer struct {
	streams chan *fakeStream
	dials   atomic.Int32
	err     error
}

func (f *fakeDialer) Dial(ctx context.Context, sc model.Scope, listID string) (reconciler.Stream, error) {
	f.dials.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	select {
	case s := <-f.streams:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type fakeItemRepo struct {
	items    []model.ListItem
	err      error
	block    chan struct{} // when set, ListItems stalls until closed
	refetchs atomic.Int32
}

func (f *fakeItemRepo) ListItems(ctx context.Context, sc model.Scope, listID string) ([]model.ListItem, error) {
	f.refetchs.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.items, f.err
}

func (f *fakeItemRepo) CreateItem(ctx context.Context, sc model.Scope, opt listRepository.CreateItemOptions) (model.ListItem, error) {
	return model.ListItem{}, errors.New("not implemented")
}

func (f *fakeItemRepo) UpdateItem(ctx context.Context, sc model.Scope, opt listRepository.UpdateItemOptions) (model.ListItem, error) {
	return model.ListItem{}, errors.New("not implemented")
}

func (f *fakeItemRepo) DeleteItem(ctx context.Context, sc model.Scope, id string) error {
	return errors.New("not implemented")
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func testConfig() reconciler.Config {
	return reconciler.Config{
		BackoffInitial:   time.Millisecond,
		BackoffMax:       5 * time.Millisecond,
		RefetchPerMinute: 10000,
	}
}

func TestRemoteToggleBecomesVisible(t *testing.T) {
	sc := model.Scope{UserID: "user-b"}
	st := store.New("user-b")
	st.ReplaceLists(nil, []model.ShoppingList{{ID: "list-1", OwnerID: "user-a", Title: "Weekly"}},
		map[string]model.Permission{"list-1": model.PermissionEdit})

	repo := &fakeItemRepo{items: []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusToBuy},
	}}
	stream := newFakeStream()
	dialer := &fakeDialer{streams: make(chan *fakeStream, 1)}
	dialer.streams <- stream

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st.SetActive("list-1", nil)
	r := reconciler.New(nopLogger{}, dialer, repo, testConfig())
	go r.Run(ctx, sc, st, "list-1")

	waitFor(t, func() bool { return len(st.Items()) == 1 }, "expected refetch to seed items")

	// Another client checks the item off; its update arrives on the
	// stream.
	stream.events <- realtime.Event{
		Table: "list_items",
		Type:  "UPDATE",
		Record: mustJSON(t, model.ListItem{
			ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusInCart,
		}),
	}

	waitFor(t, func() bool {
		it, ok := st.Item("item-1")
		return ok && it.Status == model.StatusInCart
	}, "expected remote toggle visible in cache")
}

func TestItemDeleteAndListEvents(t *testing.T) {
	sc := model.Scope{UserID: "user-b"}
	st := store.New("user-b")
	st.ReplaceLists(nil, []model.ShoppingList{{ID: "list-1", OwnerID: "user-a", Title: "Weekly"}},
		map[string]model.Permission{"list-1": model.PermissionView})

	repo := &fakeItemRepo{items: []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusToBuy},
	}}
	stream := newFakeStream()
	dialer := &fakeDialer{streams: make(chan *fakeStream, 1)}
	dialer.streams <- stream

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st.SetActive("list-1", nil)
	r := reconciler.New(nopLogger{}, dialer, repo, testConfig())
	go r.Run(ctx, sc, st, "list-1")

	waitFor(t, func() bool { return len(st.Items()) == 1 }, "expected refetch to seed items")

	stream.events <- realtime.Event{
		Table:     "list_items",
		Type:      "DELETE",
		OldRecord: mustJSON(t, map[string]string{"id": "item-1"}),
	}
	waitFor(t, func() bool { return len(st.Items()) == 0 }, "expected remote delete applied")

	stream.events <- realtime.Event{
		Table: "shopping_lists",
		Type:  "UPDATE",
		Record: mustJSON(t, model.ShoppingList{
			ID: "list-1", OwnerID: "user-a", Title: "Weekly v2",
		}),
	}
	waitFor(t, func() bool {
		l, ok := st.List("list-1")
		return ok && l.Title == "Weekly v2"
	}, "expected remote list rename applied")
}

func TestShareRevocationDropsList(t *testing.T) {
	sc := model.Scope{UserID: "user-b"}
	st := store.New("user-b")
	st.ReplaceLists(nil, []model.ShoppingList{{ID: "list-1", OwnerID: "user-a", Title: "Weekly"}},
		map[string]model.Permission{"list-1": model.PermissionEdit})

	repo := &fakeItemRepo{}
	stream := newFakeStream()
	dialer := &fakeDialer{streams: make(chan *fakeStream, 1)}
	dialer.streams <- stream

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st.SetActive("list-1", nil)
	r := reconciler.New(nopLogger{}, dialer, repo, testConfig())
	go r.Run(ctx, sc, st, "list-1")

	waitFor(t, func() bool { return repo.refetchs.Load() >= 1 }, "expected initial refetch")

	// Someone else joins the list.
	stream.events <- realtime.Event{
		Table:  "list_shares",
		Type:   "INSERT",
		Record: mustJSON(t, model.ListShare{ID: "s2", ListID: "list-1", UserID: "user-c"}),
	}
	waitFor(t, func() bool {
		l, ok := st.List("list-1")
		return ok && l.CollaboratorCount == 1
	}, "expected collaborator count bumped")

	// The session user's own share is revoked.
	stream.events <- realtime.Event{
		Table:     "list_shares",
		Type:      "DELETE",
		OldRecord: mustJSON(t, model.ListShare{ID: "s1", ListID: "list-1", UserID: "user-b"}),
	}
	waitFor(t, func() bool {
		_, ok := st.List("list-1")
		return !ok
	}, "expected revoked list dropped from cache")
}

func TestReconnectsWithRefetch(t *testing.T) {
	sc := model.Scope{UserID: "user-b"}
	st := store.New("user-b")

	repo := &fakeItemRepo{}
	first := newFakeStream()
	second := newFakeStream()
	dialer := &fakeDialer{streams: make(chan *fakeStream, 2)}
	dialer.streams <- first
	dialer.streams <- second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st.SetActive("list-1", nil)
	r := reconciler.New(nopLogger{}, dialer, repo, testConfig())
	go r.Run(ctx, sc, st, "list-1")

	waitFor(t, func() bool { return dialer.dials.Load() >= 1 }, "expected initial dial")

	// Server drops the first stream.
	first.err = errors.New("gone")
	close(first.events)

	waitFor(t, func() bool { return dialer.dials.Load() >= 2 }, "expected reconnect after stream loss")
	waitFor(t, func() bool { return repo.refetchs.Load() >= 2 }, "expected full refetch on resubscribe")
}

func TestStaleRefetchIgnoredAfterListSwitch(t *testing.T) {
	sc := model.Scope{UserID: "user-b"}
	st := store.New("user-b")
	st.SetActive("list-1", nil)

	release := make(chan struct{})
	repo := &fakeItemRepo{
		items: []model.ListItem{
			{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusToBuy},
		},
		block: release,
	}
	dialer := &fakeDialer{streams: make(chan *fakeStream, 1)}
	dialer.streams <- newFakeStream()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r := reconciler.New(nopLogger{}, dialer, repo, testConfig())
	go func() {
		r.Run(ctx, sc, st, "list-1")
		close(done)
	}()

	waitFor(t, func() bool { return repo.refetchs.Load() >= 1 }, "expected refetch to start")

	// User switches lists while the fetch is still in flight, then the
	// old subscription is cancelled and the fetch completes.
	st.SetActive("list-2", nil)
	cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return on cancellation")
	}

	if got := st.ActiveListID(); got != "list-2" {
		t.Errorf("expected active list to stay list-2, got %q", got)
	}
	if n := len(st.Items()); n != 0 {
		t.Errorf("expected no items resurrected from the detached list, got %d", n)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sc := model.Scope{UserID: "user-b"}
	st := store.New("user-b")

	repo := &fakeItemRepo{}
	stream := newFakeStream()
	dialer := &fakeDialer{streams: make(chan *fakeStream, 1)}
	dialer.streams <- stream

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r := reconciler.New(nopLogger{}, dialer, repo, testConfig())
	go func() {
		r.Run(ctx, sc, st, "list-1")
		close(done)
	}()

	waitFor(t, func() bool { return dialer.dials.Load() >= 1 }, "expected dial")
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return on cancellation")
	}
	if !stream.closed.Load() {
		t.Error("expected stream closed on shutdown")
	}
}

package reconciler

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"cartsync/internal/list/repository"
	"cartsync/internal/model"
	"cartsync/internal/store"
	pkgLog "cartsync/pkg/log"
	"cartsync/pkg/realtime"
)

// Stream is one live change-event subscription.
type Stream interface {
	Events() <-chan realtime.Event
	Err() error
	Close() error
}

// Dialer opens a change-event stream for one list. Abstracted so the
// loop can be tested without a websocket.
type Dialer interface {
	Dial(ctx context.Context, sc model.Scope, listID string) (Stream, error)
}

// Config tunes the reconnect loop.
type Config struct {
	BackoffInitial   time.Duration
	BackoffMax       time.Duration
	RefetchPerMinute int
}

// Reconciler feeds remote changes for a session's active list into its
// store, through the same primitives local edits use.
type Reconciler struct {
	l      pkgLog.Logger
	dialer Dialer
	repo   repository.ItemRepository
	cfg    Config
}

// New creates a reconciler.
func New(l pkgLog.Logger, dialer Dialer, repo repository.ItemRepository, cfg Config) *Reconciler {
	if cfg.BackoffInitial <= 0 {
		cfg.BackoffInitial = time.Second
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 30 * time.Second
	}
	if cfg.RefetchPerMinute <= 0 {
		cfg.RefetchPerMinute = 12
	}
	return &Reconciler{l: l, dialer: dialer, repo: repo, cfg: cfg}
}

// Run subscribes to listID's change stream and applies events to st
// until ctx is cancelled. Every (re)subscribe starts with a full item
// refetch, as the stream has no replay buffer; the refetch rate is
// capped so a flapping connection cannot hammer the gateway.
func (r *Reconciler) Run(ctx context.Context, sc model.Scope, st *store.Store, listID string) {
	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(r.cfg.RefetchPerMinute)),
		r.cfg.RefetchPerMinute,
	)
	backoff := r.cfg.BackoffInitial

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		if err := r.refetch(ctx, sc, st, listID); err != nil {
			r.l.Warnf(ctx, "reconciler: refetch for list %s failed: %v", listID, err)
		}

		stream, err := r.dialer.Dial(ctx, sc, listID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.l.Warnf(ctx, "reconciler: dial for list %s failed: %v, retrying in %s", listID, err, backoff)
			if !sleep(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, r.cfg.BackoffMax)
			continue
		}

		// A successful join resets the backoff ladder.
		backoff = r.cfg.BackoffInitial
		r.consume(ctx, sc, st, stream)
		_ = stream.Close()

		if ctx.Err() != nil {
			return
		}
		r.l.Infof(ctx, "reconciler: stream for list %s ended: %v, reconnecting", listID, stream.Err())
		if !sleep(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, r.cfg.BackoffMax)
	}
}

// refetch reloads the list's items from the gateway. The result is
// applied only while the list is still active: a fetch that completes
// after cancellation or a list switch is discarded, never applied.
func (r *Reconciler) refetch(ctx context.Context, sc model.Scope, st *store.Store, listID string) error {
	items, err := r.repo.ListItems(ctx, sc, listID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !st.RefreshItems(listID, items) {
		r.l.Debugf(ctx, "reconciler: dropping stale refetch for list %s", listID)
	}
	return nil
}

func (r *Reconciler) consume(ctx context.Context, sc model.Scope, st *store.Store, stream Stream) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-stream.Events():
			if !ok {
				return
			}
			r.apply(ctx, sc, st, ev)
		}
	}
}

// apply lifts one wire frame into a ChangeEvent and routes it through
// the store primitives. Unknown tables and undecodable payloads are
// logged and skipped, never fatal.
func (r *Reconciler) apply(ctx context.Context, sc model.Scope, st *store.Store, raw realtime.Event) {
	ev := model.ChangeEvent{
		Entity:     model.ChangeEntity(raw.Table),
		Op:         model.ChangeOp(strings.ToLower(raw.Type)),
		Record:     raw.Record,
		OldRecord:  raw.OldRecord,
		CommitTime: raw.CommitTime,
	}

	switch ev.Entity {
	case model.EntityItem:
		r.applyItem(ctx, st, ev)
	case model.EntityList:
		r.applyList(ctx, st, ev)
	case model.EntityShare:
		r.applyShare(ctx, sc, st, ev)
	default:
		r.l.Debugf(ctx, "reconciler: ignoring event for table %s", raw.Table)
	}
}

func (r *Reconciler) applyItem(ctx context.Context, st *store.Store, ev model.ChangeEvent) {
	if ev.Op == model.OpDelete {
		id := recordID(ev.OldRecord)
		if id == "" {
			r.l.Warnf(ctx, "reconciler: item delete without id")
			return
		}
		st.RemoveItem(id)
		return
	}

	var item model.ListItem
	if err := json.Unmarshal(ev.Record, &item); err != nil {
		r.l.Warnf(ctx, "reconciler: undecodable item payload: %v", err)
		return
	}
	st.UpsertItem(item)
}

func (r *Reconciler) applyList(ctx context.Context, st *store.Store, ev model.ChangeEvent) {
	if ev.Op == model.OpDelete {
		if id := recordID(ev.OldRecord); id != "" {
			st.RemoveList(id)
		}
		return
	}

	var list model.ShoppingList
	if err := json.Unmarshal(ev.Record, &list); err != nil {
		r.l.Warnf(ctx, "reconciler: undecodable list payload: %v", err)
		return
	}
	st.MergeList(list)
}

// applyShare keeps the collaborator count of the affected list
// current, and drops the whole list from the cache when the session
// user's own access was revoked.
func (r *Reconciler) applyShare(ctx context.Context, sc model.Scope, st *store.Store, ev model.ChangeEvent) {
	switch ev.Op {
	case model.OpInsert:
		var sh model.ListShare
		if err := json.Unmarshal(ev.Record, &sh); err != nil {
			r.l.Warnf(ctx, "reconciler: undecodable share payload: %v", err)
			return
		}
		st.AdjustCollaboratorCount(sh.ListID, 1)
	case model.OpDelete:
		var sh model.ListShare
		if err := json.Unmarshal(ev.OldRecord, &sh); err != nil {
			r.l.Warnf(ctx, "reconciler: undecodable share payload: %v", err)
			return
		}
		if sh.UserID == sc.UserID {
			st.RemoveList(sh.ListID)
			return
		}
		st.AdjustCollaboratorCount(sh.ListID, -1)
	}
}

func recordID(raw json.RawMessage) string {
	var row struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return ""
	}
	return row.ID
}

func nextBackoff(cur, max time.Duration) time.Duration {
	cur *= 2
	if cur > max {
		return max
	}
	return cur
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

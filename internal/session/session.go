package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"cartsync/internal/model"
	"cartsync/internal/store"
	pkgLog "cartsync/pkg/log"
)

// Session holds one user's in-memory replica and the cancel handle of
// their active realtime subscription.
type Session struct {
	UserID string
	Store  *store.Store

	revision atomic.Uint64

	mu           sync.Mutex
	scope        model.Scope
	cancelActive context.CancelFunc
}

// Revision is a monotonic counter bumped on every cache change, local
// or remote. Clients compare revisions across polls to detect that a
// refresh is worthwhile without diffing payloads.
func (s *Session) Revision() uint64 {
	return s.revision.Load()
}

// Scope returns the most recent authenticated scope seen for this
// session. Tokens rotate, so the stored copy is refreshed on every
// request.
func (s *Session) Scope() model.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

func (s *Session) setScope(sc model.Scope) {
	s.mu.Lock()
	s.scope = sc
	s.mu.Unlock()
}

// SwapActive cancels the previous active subscription, if any, and
// installs the new cancel handle. Pass nil to just tear down.
func (s *Session) SwapActive(cancel context.CancelFunc) {
	s.mu.Lock()
	prev := s.cancelActive
	s.cancelActive = cancel
	s.mu.Unlock()

	if prev != nil {
		prev()
	}
}

// Manager keeps one Session per user, bounded in count and idle time.
// Evicting a session cancels its realtime subscription so the socket
// does not outlive the replica it fed.
type Manager struct {
	l pkgLog.Logger

	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
}

// Config bounds the session cache.
type Config struct {
	MaxSessions int
	TTL         time.Duration
}

// NewManager creates a session manager.
func NewManager(l pkgLog.Logger, cfg Config) *Manager {
	m := &Manager{l: l}
	m.sessions = expirable.NewLRU[string, *Session](cfg.MaxSessions, func(key string, s *Session) {
		m.l.Infof(context.Background(), "session.Manager: evicting session for user %s", key)
		s.SwapActive(nil)
	}, cfg.TTL)
	return m
}

// Get returns the session for the scoped user, creating it on first
// use. The scope is refreshed on every call so later background work
// uses the newest token.
func (m *Manager) Get(sc model.Scope) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions.Get(sc.UserID); ok {
		s.setScope(sc)
		return s
	}

	s := &Session{
		UserID: sc.UserID,
		Store:  store.New(sc.UserID),
		scope:  sc,
	}
	s.Store.OnChange(func() { s.revision.Add(1) })
	m.sessions.Add(sc.UserID, s)
	return s
}

// Peek returns the session without refreshing recency, or nil.
func (m *Manager) Peek(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Peek(userID)
	if !ok {
		return nil
	}
	return s
}

// Drop removes a user's session, cancelling any active subscription.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions.Remove(userID)
}

package store

import (
	"sort"
	"sync"

	"cartsync/internal/budget"
	"cartsync/internal/model"
)

// Store is the in-memory cache of all lists visible to one user and,
// for the active list, its items. It is the single mutable shared
// structure of the sync engine: the mutation pipeline and the realtime
// reconciler both route through the primitive operations below, so a
// remote collaborator's edit and a local edit cannot diverge in
// behavior. The store mutex serializes all mutations; within one
// client, application order equals call order.
type Store struct {
	mu sync.Mutex

	userID       string
	lists        map[string]model.ShoppingList
	permissions  map[string]model.Permission // shared lists only
	activeListID string
	items        map[string]model.ListItem // items of the active list

	listeners []func()
}

// New creates an empty cache for the given user.
func New(userID string) *Store {
	return &Store{
		userID:      userID,
		lists:       make(map[string]model.ShoppingList),
		permissions: make(map[string]model.Permission),
		items:       make(map[string]model.ListItem),
	}
}

// OnChange registers a callback invoked after every cache mutation.
// Callbacks run outside the store lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// ReplaceLists swaps in the merged result of the owned and shared
// queries. Duplicates are deduplicated by identity with the owned
// entry winning, since ownership implies the user already has the full
// row. perms carries the share permission per shared list id.
func (s *Store) ReplaceLists(owned, shared []model.ShoppingList, perms map[string]model.Permission) {
	s.mu.Lock()
	lists := make(map[string]model.ShoppingList, len(owned)+len(shared))
	permissions := make(map[string]model.Permission, len(perms))

	for _, l := range shared {
		lists[l.ID] = l
		if p, ok := perms[l.ID]; ok {
			permissions[l.ID] = p
		}
	}
	for _, l := range owned {
		// Owned wins over a shared entry with the same id.
		delete(permissions, l.ID)
		lists[l.ID] = l
	}

	s.lists = lists
	s.permissions = permissions
	s.mu.Unlock()

	s.notify()
}

// MergeList upserts a single list row.
func (s *Store) MergeList(l model.ShoppingList) {
	s.mu.Lock()
	s.lists[l.ID] = l
	s.mu.Unlock()

	s.notify()
}

// RemoveList drops a list from the cache. If it was the active list,
// its items and the active marker are dropped with it.
func (s *Store) RemoveList(id string) bool {
	s.mu.Lock()
	_, ok := s.lists[id]
	if ok {
		delete(s.lists, id)
		delete(s.permissions, id)
		if s.activeListID == id {
			s.activeListID = ""
			s.items = make(map[string]model.ListItem)
		}
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
	return ok
}

// List returns a list by id with its read-through projections applied.
func (s *Store) List(id string) (model.ShoppingList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[id]
	if !ok {
		return model.ShoppingList{}, false
	}
	return s.project(l), true
}

// project fills the ItemCount/EstimatedTotal projections for the
// active list from current item state. Callers must hold the lock.
func (s *Store) project(l model.ShoppingList) model.ShoppingList {
	if l.ID != s.activeListID {
		return l
	}
	items := s.itemSliceLocked()
	l.ItemCount = len(items)
	l.EstimatedTotal = budget.RunningTotal(items)
	return l
}

// OwnedLists returns the user's own live trips, newest first.
// Templates are excluded.
func (s *Store) OwnedLists() []model.ShoppingList {
	return s.listsWhere(func(l model.ShoppingList) bool {
		return l.OwnerID == s.userID && !l.IsTemplate
	})
}

// SharedLists returns live trips shared with the user, newest first.
func (s *Store) SharedLists() []model.ShoppingList {
	return s.listsWhere(func(l model.ShoppingList) bool {
		return l.OwnerID != s.userID && !l.IsTemplate
	})
}

// Templates returns the user's reusable blueprints, newest first.
func (s *Store) Templates() []model.ShoppingList {
	return s.listsWhere(func(l model.ShoppingList) bool {
		return l.OwnerID == s.userID && l.IsTemplate
	})
}

func (s *Store) listsWhere(keep func(model.ShoppingList) bool) []model.ShoppingList {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ShoppingList
	for _, l := range s.lists {
		if keep(l) {
			out = append(out, s.project(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ReadOnly reports whether the user's access to the list is view-only.
// This is a capability hint for rendering, never a security boundary.
func (s *Store) ReadOnly(listID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permissions[listID] == model.PermissionView
}

// AdjustCollaboratorCount shifts the collaborator projection on a
// cached list in response to share events.
func (s *Store) AdjustCollaboratorCount(listID string, delta int) {
	s.mu.Lock()
	l, ok := s.lists[listID]
	if ok {
		l.CollaboratorCount += delta
		if l.CollaboratorCount < 0 {
			l.CollaboratorCount = 0
		}
		s.lists[listID] = l
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
}

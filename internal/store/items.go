package store

import (
	"sort"

	"cartsync/internal/model"
)

// SetActive marks listID as the active list and replaces its cached
// items with a fresh fetch. Pending optimistic items for the same list
// survive the swap so an in-flight refresh cannot discard local edits;
// items of the previously active list are dropped.
func (s *Store) SetActive(listID string, items []model.ListItem) {
	s.mu.Lock()

	next := make(map[string]model.ListItem, len(items))
	for _, it := range s.items {
		if it.Pending && it.ListID == listID {
			next[it.ID] = it
		}
	}
	for _, it := range items {
		next[it.ID] = it
	}

	s.activeListID = listID
	s.items = next
	s.mu.Unlock()

	s.notify()
}

// RefreshItems replaces the active list's items from a full re-fetch,
// but only while listID is still the active list. A fetch that
// outlives a list switch reports false and is dropped; it must not
// resurrect the detached list. Pending optimistic items survive the
// swap, as with SetActive.
func (s *Store) RefreshItems(listID string, items []model.ListItem) bool {
	s.mu.Lock()
	if s.activeListID != listID {
		s.mu.Unlock()
		return false
	}

	next := make(map[string]model.ListItem, len(items))
	for _, it := range s.items {
		if it.Pending && it.ListID == listID {
			next[it.ID] = it
		}
	}
	for _, it := range items {
		next[it.ID] = it
	}

	s.items = next
	s.mu.Unlock()

	s.notify()
	return true
}

// ActiveListID returns the currently active list id, empty when none.
func (s *Store) ActiveListID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeListID
}

// Item returns a cached item by id.
func (s *Store) Item(id string) (model.ListItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

// Items returns the active list's items in display order: grouped by
// category, then by sort order.
func (s *Store) Items() []model.ListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemSliceLocked()
}

// ItemsByStatus returns the active list's items with the given status,
// in display order.
func (s *Store) ItemsByStatus(status model.ItemStatus) []model.ListItem {
	all := s.Items()
	out := all[:0:0]
	for _, it := range all {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// Snapshot returns a copy of the active list's items for aggregate
// computation.
func (s *Store) Snapshot() []model.ListItem {
	return s.Items()
}

func (s *Store) itemSliceLocked() []model.ListItem {
	out := make([]model.ListItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// NextSortOrder returns one past the highest sort order in the given
// category, placing a new item at the tail of its group.
func (s *Store) NextSortOrder(categoryID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 0
	for _, it := range s.items {
		if it.CategoryID == categoryID && it.SortOrder >= next {
			next = it.SortOrder + 1
		}
	}
	return next
}

// UpsertItem inserts or replaces an item in the active list's cache.
// It is the one write path for item rows from every source — local
// optimistic inserts, persistence-call results, and remote change
// events — and is idempotent: re-applying an already-applied row is a
// no-op.
//
// Rows for a list other than the active one are dropped; a completion
// arriving after the user switched lists must not resurrect state.
//
// Reconciliation of optimistic entries: a row carrying a client token
// replaces the pending entry with the same token. Rows without a
// token fall back to best-effort field equality against pending
// entries.
func (s *Store) UpsertItem(item model.ListItem) bool {
	s.mu.Lock()

	if s.activeListID == "" || item.ListID != s.activeListID {
		s.mu.Unlock()
		return false
	}

	// Deterministic match by idempotency token.
	if item.ClientToken != "" {
		for id, existing := range s.items {
			if existing.Pending && existing.ClientToken == item.ClientToken && id != item.ID {
				delete(s.items, id)
				break
			}
		}
	}

	if existing, ok := s.items[item.ID]; ok {
		if itemsEquivalent(existing, item) {
			s.mu.Unlock()
			return false
		}
		// Preserve local-only state across remote overwrites.
		item.RestoreStatus = existing.RestoreStatus
		s.items[item.ID] = item
		s.mu.Unlock()
		s.notify()
		return true
	}

	// Best-effort match when no token round-trips.
	if !item.Pending && item.ClientToken == "" {
		for id, existing := range s.items {
			if existing.Pending &&
				existing.Name == item.Name &&
				existing.Quantity == item.Quantity &&
				existing.Status == item.Status {
				delete(s.items, id)
				break
			}
		}
	}

	s.items[item.ID] = item
	s.mu.Unlock()

	s.notify()
	return true
}

// PatchItem applies fn to the cached item, if present, and returns the
// updated copy. fn reports whether it changed anything; unchanged
// patches do not renotify, so re-applying a remote event that matches
// local state is a no-op.
func (s *Store) PatchItem(id string, fn func(*model.ListItem) bool) (model.ListItem, bool) {
	s.mu.Lock()
	it, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return model.ListItem{}, false
	}

	changed := fn(&it)
	if changed {
		s.items[id] = it
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return it, true
}

// RemoveItem drops an item from the cache. Removing an item that is
// already gone is a no-op, not an error.
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	_, ok := s.items[id]
	if ok {
		delete(s.items, id)
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
	return ok
}

// itemsEquivalent compares the replicated fields of two item rows.
// Local-only fields (Pending, RestoreStatus) are ignored.
func itemsEquivalent(a, b model.ListItem) bool {
	if a.ID != b.ID || a.ListID != b.ListID || a.Name != b.Name ||
		a.CategoryID != b.CategoryID || a.Quantity != b.Quantity ||
		a.Unit != b.Unit || a.EstimatedPrice != b.EstimatedPrice ||
		a.Status != b.Status || a.SortOrder != b.SortOrder ||
		a.ProductID != b.ProductID {
		return false
	}
	if (a.ActualPrice == nil) != (b.ActualPrice == nil) {
		return false
	}
	if a.ActualPrice != nil && *a.ActualPrice != *b.ActualPrice {
		return false
	}
	if len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}

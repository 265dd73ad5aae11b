package model

import "time"

// ItemStatus is the tri-state shopping status of a list item.
// An item is in exactly one status at any time.
type ItemStatus string

const (
	StatusToBuy   ItemStatus = "to_buy"
	StatusInCart  ItemStatus = "in_cart"
	StatusSkipped ItemStatus = "skipped"
)

// Valid reports whether s is one of the three defined statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusToBuy, StatusInCart, StatusSkipped:
		return true
	}
	return false
}

// ShoppingList is a named collection of items representing either an
// active shopping trip or a reusable template.
//
// ItemCount, EstimatedTotal and CollaboratorCount are read-through
// projections derived from current item/share state, not authoritative
// fields.
type ShoppingList struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Title             string    `json:"title"`
	StoreID           string    `json:"store_id,omitempty"`
	StoreName         string    `json:"store_name,omitempty"`
	IsTemplate        bool      `json:"is_template"`
	Budget            *float64  `json:"budget,omitempty"`
	ItemCount         int       `json:"item_count"`
	EstimatedTotal    float64   `json:"estimated_total"`
	CollaboratorCount int       `json:"collaborator_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListItem is a single product line within a list.
//
// ClientToken is a client-generated idempotency token sent with the
// create call and echoed back by the gateway in change events, so an
// optimistic entry can be matched to its server row deterministically.
// Pending marks an optimistic entry whose durable write has not been
// confirmed yet; pending items are local-only and never serialized.
type ListItem struct {
	ID             string     `json:"id"`
	ListID         string     `json:"list_id"`
	ProductID      string     `json:"product_id,omitempty"`
	Name           string     `json:"name"`
	CategoryID     string     `json:"category_id"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit"`
	EstimatedPrice float64    `json:"estimated_price"`
	ActualPrice    *float64   `json:"actual_price,omitempty"`
	Status         ItemStatus `json:"status"`
	Tags           []string   `json:"tags,omitempty"`
	SortOrder      int        `json:"sort_order"`
	ClientToken    string     `json:"client_token,omitempty"`
	Pending        bool       `json:"-"`

	// restoreStatus remembers the pre-skip status so un-skipping an item
	// that was in the cart puts it back in the cart. Local-only; a remote
	// client that never saw the skip falls back to to_buy.
	RestoreStatus ItemStatus `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitPrice returns the price used for aggregates: the observed actual
// price when present, the planned estimate otherwise.
func (it ListItem) UnitPrice() float64 {
	if it.ActualPrice != nil {
		return *it.ActualPrice
	}
	return it.EstimatedPrice
}

// Permission is the access level granted by a share.
type Permission string

const (
	PermissionEdit Permission = "edit"
	PermissionView Permission = "view"
)

// Valid reports whether p is a defined permission level.
func (p Permission) Valid() bool {
	return p == PermissionEdit || p == PermissionView
}

// ListShare grants a non-owner user access to a list. At most one
// active share exists per (list, user) pair; the owner is never
// represented as a share row. Collaborator display fields are
// denormalized so rendering needs no join.
type ListShare struct {
	ID                 string     `json:"id"`
	ListID             string     `json:"list_id"`
	UserID             string     `json:"user_id"`
	Permission         Permission `json:"permission"`
	CollaboratorEmail  string     `json:"collaborator_email"`
	CollaboratorName   string     `json:"collaborator_name,omitempty"`
	CollaboratorAvatar string     `json:"collaborator_avatar,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Profile is the public user record used to resolve share invitees by
// email.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

package share

import "cartsync/internal/model"

// ShareListInput is the input for inviting a collaborator.
type ShareListInput struct {
	ListID     string
	Email      string
	Permission model.Permission
}

// SharedList pairs a list shared with the current user with the
// permission they were granted on it.
type SharedList struct {
	List       model.ShoppingList
	Permission model.Permission
}

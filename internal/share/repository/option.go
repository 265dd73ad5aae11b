package repository

import "cartsync/internal/model"

// CreateShareOptions holds parameters for inserting a new share,
// including the denormalized collaborator display fields.
type CreateShareOptions struct {
	ListID             string
	UserID             string
	Permission         model.Permission
	CollaboratorEmail  string
	CollaboratorName   string
	CollaboratorAvatar string
}

package repository

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrFailedToInsert = errors.New("failed to insert")
	ErrFailedToGet    = errors.New("failed to get")
	ErrFailedToList   = errors.New("failed to list")
	ErrFailedToUpdate = errors.New("failed to update")
	ErrFailedToDelete = errors.New("failed to delete")
)

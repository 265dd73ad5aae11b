package http

import (
	"cartsync/internal/list"
	pkgErrors "cartsync/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch err {
	case list.ErrListNotFound:
		return pkgErrors.NewHTTPError(404, "list not found")
	case list.ErrItemNotFound:
		return pkgErrors.NewHTTPError(404, "item not found")
	case list.ErrEmptyTitle:
		return pkgErrors.NewHTTPError(400, "title is required")
	case list.ErrEmptyName:
		return pkgErrors.NewHTTPError(400, "item name is required")
	case list.ErrInvalidQuantity:
		return pkgErrors.NewHTTPError(400, "quantity must be at least 1")
	case list.ErrNegativePrice:
		return pkgErrors.NewHTTPError(400, "price must not be negative")
	case list.ErrInvalidStatus:
		return pkgErrors.NewHTTPError(400, "unknown item status")
	case list.ErrNotTemplate:
		return pkgErrors.NewHTTPError(400, "list is not a template")
	case list.ErrTemplateList:
		return pkgErrors.NewHTTPError(400, "operation not available for templates")
	case list.ErrNoActiveList:
		return pkgErrors.NewHTTPError(409, "list is not the active list")
	default:
		return err
	}
}

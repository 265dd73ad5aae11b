package http

import (
	"cartsync/internal/share"
	pkgErrors "cartsync/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
// Share errors carry user-facing messages already.
func (h *handler) mapError(err error) error {
	switch err {
	case share.ErrUserNotFound:
		return pkgErrors.NewHTTPError(404, err.Error())
	case share.ErrShareNotFound:
		return pkgErrors.NewHTTPError(404, err.Error())
	case share.ErrAlreadyShared:
		return pkgErrors.NewHTTPError(409, err.Error())
	case share.ErrSelfShareNotAllowed:
		return pkgErrors.NewHTTPError(400, err.Error())
	case share.ErrInvalidPermission:
		return pkgErrors.NewHTTPError(400, err.Error())
	default:
		return err
	}
}

package http

import (
	"errors"

	"renov-srv/internal/user"
	pkgErrors "renov-srv/pkg/errors"
)

var (
	errCodeRequired       = pkgErrors.NewHTTPError(422, "Login code is required").WithField("code", "required")
	errInvalidBody        = pkgErrors.NewHTTPError(422, "Invalid request body").WithField("body", "malformed or missing required fields")
	errUserNotFound       = pkgErrors.NewHTTPError(404, "User not found")
	errCodeExchangeFailed = pkgErrors.NewHTTPError(401, "Login code rejected")
	errLoginFailed        = pkgErrors.NewHTTPError(500, "Login failed, please retry")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, user.ErrCodeRequired):
		return errCodeRequired
	case errors.Is(err, user.ErrCodeExchangeFailed):
		return errCodeExchangeFailed
	case errors.Is(err, user.ErrUserNotFound):
		return errUserNotFound
	case errors.Is(err, user.ErrLoginFailed):
		return errLoginFailed
	default:
		return err
	}
}

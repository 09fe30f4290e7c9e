package http

import (
	"errors"

	"renov-srv/internal/entitlement"
	pkgErrors "renov-srv/pkg/errors"
)

var (
	errInvalidBody     = pkgErrors.NewHTTPError(422, "Invalid request body").WithField("body", "malformed or missing required fields")
	errReportNotFound  = pkgErrors.NewHTTPError(404, "Report not found")
	errAlreadyUnlocked = pkgErrors.NewHTTPError(409, "Report is already unlocked")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, entitlement.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, entitlement.ErrAlreadyUnlocked):
		return errAlreadyUnlocked
	default:
		return err
	}
}

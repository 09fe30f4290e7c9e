package http

import (
	"errors"

	"renov-srv/internal/payment"
	pkgErrors "renov-srv/pkg/errors"
)

var (
	errInvalidBody     = pkgErrors.NewHTTPError(422, "Invalid request body").WithField("body", "malformed or missing required fields")
	errOrderNotFound   = pkgErrors.NewHTTPError(404, "Payment order not found")
	errOrderNotPayable = pkgErrors.NewHTTPError(409, "Payment order is not payable")
	errReportNotFound  = pkgErrors.NewHTTPError(404, "Report not found")
	errAlreadyUnlocked = pkgErrors.NewHTTPError(409, "Report is already unlocked")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, payment.ErrOrderNotFound):
		return errOrderNotFound
	case errors.Is(err, payment.ErrOrderNotPayable):
		return errOrderNotPayable
	case errors.Is(err, payment.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, payment.ErrAlreadyUnlocked):
		return errAlreadyUnlocked
	default:
		return err
	}
}

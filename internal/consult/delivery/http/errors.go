package http

import (
	"errors"

	"renov-srv/internal/consult"
	pkgErrors "renov-srv/pkg/errors"
)

var (
	errInvalidBody      = pkgErrors.NewHTTPError(422, "Invalid request body").WithField("body", "malformed or missing required fields")
	errInvalidSessionID = pkgErrors.NewHTTPError(422, "Invalid session ID").WithField("session_id", "must be a positive integer")
	errSessionNotFound  = pkgErrors.NewHTTPError(404, "Session not found")
	errPermissionDenied = pkgErrors.NewHTTPError(403, "Permission denied")
	errSessionClosed    = pkgErrors.NewHTTPError(409, "Session is closed")
	errMessageRequired  = pkgErrors.NewHTTPError(422, "Message content is required").WithField("content", "required")
	errMessageTooLong   = pkgErrors.NewHTTPError(422, "Message too long (max 2000 characters)").WithField("content", "exceeds 2000 characters")
	errInvalidStage     = pkgErrors.NewHTTPError(422, "Invalid construction stage").WithField("stage", "unknown stage code")
	// Quota exhaustion is a 403, not a 429: the client must not retry
	// until the next calendar month, while 429 means back off and retry.
	errQuotaExhausted     = pkgErrors.NewHTTPError(403, "quota_exhausted: monthly consultation quota reached")
	errAssistantFailed    = pkgErrors.NewHTTPError(503, "Assistant is temporarily unavailable")
	errLinkedReportDenied = pkgErrors.NewHTTPError(403, "Linked report not accessible")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, consult.ErrSessionNotFound):
		return errSessionNotFound
	case errors.Is(err, consult.ErrPermissionDenied):
		return errPermissionDenied
	case errors.Is(err, consult.ErrSessionClosed):
		return errSessionClosed
	case errors.Is(err, consult.ErrMessageRequired):
		return errMessageRequired
	case errors.Is(err, consult.ErrMessageTooLong):
		return errMessageTooLong
	case errors.Is(err, consult.ErrInvalidStage):
		return errInvalidStage
	case errors.Is(err, consult.ErrQuotaExhausted):
		return errQuotaExhausted
	case errors.Is(err, consult.ErrAssistantFailed):
		return errAssistantFailed
	case errors.Is(err, consult.ErrLinkedReportDenied):
		return errLinkedReportDenied
	default:
		return err
	}
}

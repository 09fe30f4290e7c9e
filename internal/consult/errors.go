package consult

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSessionClosed      = errors.New("session closed")
	ErrMessageRequired    = errors.New("message content is required")
	ErrMessageTooLong     = errors.New("message too long")
	ErrInvalidStage       = errors.New("invalid construction stage")
	ErrQuotaExhausted     = errors.New("monthly quota exhausted")
	ErrAssistantFailed    = errors.New("assistant unavailable")
	ErrLinkedReportDenied = errors.New("linked report not accessible")
)

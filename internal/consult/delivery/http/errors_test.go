package http

import (
	"errors"
	"testing"

	"renov-srv/internal/consult"
	pkgErrors "renov-srv/pkg/errors"
)

func TestMapError(t *testing.T) {
	h := &handler{}

	t.Run("quota exhaustion is 403, not a rate limit", func(t *testing.T) {
		// A spent monthly quota cannot be retried away; only rate
		// limits answer 429.
		httpErr, ok := h.mapError(consult.ErrQuotaExhausted).(*pkgErrors.HTTPError)
		if !ok {
			t.Fatal("expected an HTTPError")
		}
		if httpErr.Code != 403 {
			t.Errorf("quota_exhausted maps to HTTP %d, want 403", httpErr.Code)
		}
	})

	t.Run("validation failures are 422 with field detail", func(t *testing.T) {
		tests := []struct {
			name  string
			err   error
			field string
		}{
			{"message required", consult.ErrMessageRequired, "content"},
			{"message too long", consult.ErrMessageTooLong, "content"},
			{"invalid stage", consult.ErrInvalidStage, "stage"},
		}
		for _, tc := range tests {
			httpErr, ok := h.mapError(tc.err).(*pkgErrors.HTTPError)
			if !ok {
				t.Fatalf("%s: expected an HTTPError", tc.name)
			}
			if httpErr.Code != 422 {
				t.Errorf("%s: got code %d, want 422", tc.name, httpErr.Code)
			}
			if len(httpErr.Fields) == 0 || httpErr.Fields[0].Field != tc.field {
				t.Errorf("%s: missing field detail %q", tc.name, tc.field)
			}
		}
	})

	t.Run("closed session is a conflict", func(t *testing.T) {
		httpErr, ok := h.mapError(consult.ErrSessionClosed).(*pkgErrors.HTTPError)
		if !ok {
			t.Fatal("expected an HTTPError")
		}
		if httpErr.Code != 409 {
			t.Errorf("got code %d, want 409", httpErr.Code)
		}
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		sentinel := errors.New("boom")
		if got := h.mapError(sentinel); got != sentinel {
			t.Errorf("got %v, want the original error", got)
		}
	})
}

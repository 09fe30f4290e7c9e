package http

import (
	"testing"

	"renov-srv/internal/report"
	pkgErrors "renov-srv/pkg/errors"
)

func TestMapErrorValidation(t *testing.T) {
	h := &handler{}

	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"invalid variant", report.ErrInvalidVariant, "variant"},
		{"invalid stage", report.ErrInvalidStage, "stage"},
		{"file too large", report.ErrFileTooLarge, "file"},
		{"unsupported file type", report.ErrUnsupportedFileType, "file"},
		{"company name required", report.ErrCompanyNameRequired, "company_name"},
		{"photos required", report.ErrPhotosRequired, "photo_refs"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			httpErr, ok := h.mapError(tc.err).(*pkgErrors.HTTPError)
			if !ok {
				t.Fatal("expected an HTTPError")
			}
			if httpErr.Code != 422 {
				t.Errorf("got code %d, want 422", httpErr.Code)
			}
			if len(httpErr.Fields) == 0 || httpErr.Fields[0].Field != tc.field {
				t.Errorf("missing field detail %q", tc.field)
			}
		})
	}
}

func TestMapErrorRequestShape(t *testing.T) {
	for _, httpErr := range []*pkgErrors.HTTPError{errInvalidBody, errInvalidReportID, errFileRequired} {
		if httpErr.Code != 422 {
			t.Errorf("%q: got code %d, want 422", httpErr.Message, httpErr.Code)
		}
		if len(httpErr.Fields) == 0 {
			t.Errorf("%q: expected field detail", httpErr.Message)
		}
	}
}

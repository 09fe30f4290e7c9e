package http

import (
	"errors"

	"renov-srv/internal/report"
	pkgErrors "renov-srv/pkg/errors"
)

var (
	errFileRequired        = pkgErrors.NewHTTPError(422, "File is required").WithField("file", "required")
	errInvalidBody         = pkgErrors.NewHTTPError(422, "Invalid request body").WithField("body", "malformed or missing required fields")
	errInvalidReportID     = pkgErrors.NewHTTPError(422, "Invalid report ID").WithField("id", "must be a positive integer")
	errReportNotFound      = pkgErrors.NewHTTPError(404, "Report not found")
	errPermissionDenied    = pkgErrors.NewHTTPError(403, "Permission denied")
	errInvalidVariant      = pkgErrors.NewHTTPError(422, "Invalid report type").WithField("variant", "unknown report type")
	errInvalidStage        = pkgErrors.NewHTTPError(422, "Invalid construction stage").WithField("stage", "unknown stage code")
	errFileTooLarge        = pkgErrors.NewHTTPError(422, "File exceeds the size limit").WithField("file", "exceeds the size limit")
	errUnsupportedFileType = pkgErrors.NewHTTPError(422, "Unsupported file type").WithField("file", "unsupported type")
	errCompanyNameRequired = pkgErrors.NewHTTPError(422, "Company name is required").WithField("company_name", "required")
	errPhotosRequired      = pkgErrors.NewHTTPError(422, "At least one photo is required").WithField("photo_refs", "at least one required")
	errRecheckNotAllowed   = pkgErrors.NewHTTPError(409, "Report is not awaiting rectification")
	errRestoreMembersOnly  = pkgErrors.NewHTTPError(403, "Restore is a member feature")
	errSubmitFailed        = pkgErrors.NewHTTPError(500, "Submission failed, please retry")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrPermissionDenied):
		return errPermissionDenied
	case errors.Is(err, report.ErrInvalidVariant):
		return errInvalidVariant
	case errors.Is(err, report.ErrInvalidStage):
		return errInvalidStage
	case errors.Is(err, report.ErrFileTooLarge):
		return errFileTooLarge
	case errors.Is(err, report.ErrUnsupportedFileType):
		return errUnsupportedFileType
	case errors.Is(err, report.ErrCompanyNameRequired):
		return errCompanyNameRequired
	case errors.Is(err, report.ErrPhotosRequired):
		return errPhotosRequired
	case errors.Is(err, report.ErrRecheckNotAllowed):
		return errRecheckNotAllowed
	case errors.Is(err, report.ErrRestoreMembersOnly):
		return errRestoreMembersOnly
	case errors.Is(err, report.ErrRestoreExpired):
		// Past the retention window the report is unrecoverable, so it
		// no longer exists from the caller's point of view.
		return errReportNotFound
	case errors.Is(err, report.ErrSubmitFailed):
		return errSubmitFailed
	default:
		return err
	}
}

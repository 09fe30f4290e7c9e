package report

import "errors"

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrPermissionDenied    = errors.New("report belongs to another owner")
	ErrInvalidVariant      = errors.New("invalid report variant")
	ErrInvalidStage        = errors.New("invalid construction stage")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrCompanyNameRequired = errors.New("company name is required")
	ErrPhotosRequired      = errors.New("at least one photo is required")
	ErrRecheckNotAllowed   = errors.New("report is not awaiting rectification")
	ErrRestoreMembersOnly  = errors.New("restore requires an active membership")
	ErrRestoreExpired      = errors.New("restore window has expired")
	ErrSubmitFailed        = errors.New("report submission failed")
)

package repository

import "errors"

var (
	ErrReportNotFound     = errors.New("repository: report not found")
	ErrReportCreateFailed = errors.New("repository: failed to create report")
	// ErrReportUpdateFailed also covers status transitions that lose
	// their compare-and-set race against another writer.
	ErrReportUpdateFailed = errors.New("repository: failed to update report")
)

package payment

import "errors"

var (
	ErrOrderNotFound   = errors.New("payment order not found")
	ErrOrderNotPayable = errors.New("payment order not payable")
	ErrReportNotFound  = errors.New("report not found")
	ErrAlreadyUnlocked = errors.New("report already unlocked")
)

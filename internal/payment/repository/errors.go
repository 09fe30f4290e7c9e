package repository

import "errors"

var (
	ErrOrderNotFound     = errors.New("payment order not found")
	ErrOrderNotPayable   = errors.New("payment order not payable")
	ErrOrderCreateFailed = errors.New("failed to create payment order")
)

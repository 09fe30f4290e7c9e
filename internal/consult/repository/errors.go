package repository

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionCreateFailed = errors.New("failed to create session")
	ErrQuotaExhausted      = errors.New("monthly quota exhausted")
)

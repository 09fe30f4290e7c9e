package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCodeRequired       = errors.New("login code is required")
	ErrCodeExchangeFailed = errors.New("platform code exchange failed")
	ErrLoginFailed        = errors.New("login failed")
)

package domain

import "errors"

var (
	// ErrSecretNotConfigured means the signing secret is absent. This is a
	// deployment fault: main refuses to start, it never surfaces per-request.
	ErrSecretNotConfigured = errors.New("access token secret is not configured")

	ErrInvalidToken            = errors.New("invalid access token")
	ErrTokenExpired            = errors.New("access token expired")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrForbidden               = errors.New("access forbidden")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserExists              = errors.New("user with this email already exists")
	ErrUnknownRole             = errors.New("unknown role")
	ErrCodeNotFound            = errors.New("no verification code for identifier")
)

package auth

import "errors"

var (
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidToken      = errors.New("invalid reset token")
	ErrPasswordTooLong   = errors.New("password exceeds maximum length of 72 bytes")
)

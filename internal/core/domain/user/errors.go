package user

import (
	"errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrWeakPassword          = errors.New("password is too weak")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAlreadyAuthenticated  = errors.New("already authenticated")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired restore token")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrUnauthenticated       = errors.New("invalid authentication token")
)

var (
	ErrInvalidRestoreTokenSignature = errors.New("invalid restore token signature")
	ErrRestoreTokenExpired          = errors.New("restore token expired")
	ErrInvalidSessionToken          = errors.New("invalid session token")
)

package domain

import "errors"

// Authentication errors
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountLocked        = errors.New("account locked due to too many failed login attempts")
	ErrAccountDeactivated   = errors.New("account deactivated")
	ErrAccountSuspended     = errors.New("account suspended")
	ErrInvalidToken         = errors.New("invalid token")
)

// Validation errors
var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// Application errors
var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrInvalidApplicationType = errors.New("invalid application type")
)

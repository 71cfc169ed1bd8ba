package usecase

import "errors"

// Expected failures of the session and user services. Handlers match these
// with errors.Is and map them to status codes; everything else is treated as
// an infrastructure fault and surfaced as a generic 500.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrRefreshTokenMissing = errors.New("refresh token not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNoAccessToken       = errors.New("access token not found")
	ErrInvalidAccessToken  = errors.New("invalid token")
	ErrUserNotFound        = errors.New("user not found")
	ErrValidationFailed    = errors.New("validation failed")
)

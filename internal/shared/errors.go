package shared

import "errors"

var (
	// auth-specific errors
	ErrorInvalidToken = errors.New("invalid token")
)

package jwt

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid bridge token config")
	ErrInvalidToken  = errors.New("invalid bridge token")
	ErrTokenExpired  = errors.New("bridge token expired")
)

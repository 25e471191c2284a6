package models

import "errors"

// Domain errors shared by repositories, services and handlers. Callers
// classify with errors.Is; the HTTP layer maps each to a status code.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("login required")
)

package service

import "errors"

// Error taxonomy surfaced to the transport layer. Handlers map these onto
// HTTP statuses: validation 400, not found 404, unauthorized 401 and
// persistence 500.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authorized")
	ErrPersistence  = errors.New("storage failure")
)

package repo

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateSlug  = errors.New("a shop with that slug already exists")
	ErrDuplicateEmail = errors.New("a user with that email already exists")
)

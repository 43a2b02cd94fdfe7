package models

import "errors"

var (
	ErrEmailExists        = errors.New("email exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrUnknownMonth       = errors.New("unknown month")
	ErrCategoryTooLong    = errors.New("category too long")
)

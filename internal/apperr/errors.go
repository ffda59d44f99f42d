package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration error")
)

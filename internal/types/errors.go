package types

import "errors"

// Controller errors. Handlers map them onto HTTP statuses with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

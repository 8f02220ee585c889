package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrReferential = errors.New("referenced entity does not exist")
	ErrValidation  = errors.New("validation error")

	ErrUnauthorized  = errors.New("unauthorized")
	ErrNoActiveToken = fmt.Errorf("%w: no active token", ErrUnauthorized)
	ErrTokenMismatch = fmt.Errorf("%w: token does not match any session", ErrUnauthorized)

	ErrInvalidSortField   = fmt.Errorf("%w: invalid sort field", ErrValidation)
	ErrHashingUnavailable = errors.New("password hashing unavailable")
)

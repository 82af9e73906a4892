package services

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"storefront/repository"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// StoreError wraps a failure of a backing system (database, cache, storage, broker).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeError classifies err: sentinel errors pass through, missing rows become
// ErrNotFound, unique violations ErrDuplicateKey, anything else a *StoreError.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrDuplicateKey, op)
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

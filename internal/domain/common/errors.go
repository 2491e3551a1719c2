package common

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// StorageError reports a failure of the persistence layer. Message is safe to
// show to callers, Err keeps the original cause for diagnostics.
type StorageError struct {
	Message string
	Err     error
}

func (e StorageError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}

func NewStorageFailure(msg string, cause error) error {
	return StorageError{Message: msg, Err: cause}
}

func IsStorageFailure(err error) bool {
	var se StorageError
	return errors.As(err, &se)
}

package db

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an update or delete aimed at a key that does not
// exist. Reads signal absence with a found bool instead.
var ErrNotFound = errors.New("record not found")

// StorageError wraps an engine-level failure: I/O trouble, a corrupted
// database file, a constraint the schema itself rejects. It is not
// recoverable by correcting input.
type StorageError struct {
	Op  string
	Err error
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", err.Op, err.Err)
}

func (err *StorageError) Unwrap() error {
	return err.Err
}

func storageFailure(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

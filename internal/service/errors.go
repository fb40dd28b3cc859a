package service

import (
	"errors"
	"fmt"
)

// loadError is a file-level sentinel carrying its metric class.
type loadError struct {
	msg   string
	class string
}

func (e *loadError) Error() string      { return e.msg }
func (e *loadError) ErrorClass() string { return e.class }

var (
	// ErrMissingEOF is returned when a file ends without the %%EOF terminator.
	ErrMissingEOF error = &loadError{msg: "file has no %%EOF terminator", class: "missing_eof"}
	// ErrDryRun rolls back the file transaction of a dry run.
	ErrDryRun error = &loadError{msg: "dry run", class: "dry_run"}
)

// PersistenceError wraps a store failure. It aborts the current file.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrorClass tags persistence failures for metrics and alerts.
func (e *PersistenceError) ErrorClass() string {
	return "persistence"
}

func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistenceError reports whether err was caused by the store.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

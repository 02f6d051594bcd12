package service

import "errors"

var (
	// ErrValidation wraps every rejected service input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("conflict")

	// ErrImportNotConfigured is returned before any row is read when the
	// importer has no store to write to.
	ErrImportNotConfigured = errors.New("import not configured")
)

package models

import "errors"

// Error taxonomy surfaced to the caller. Services wrap these with
// fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDecode           = errors.New("stored data is corrupt")
	ErrStorage          = errors.New("storage failure")
)

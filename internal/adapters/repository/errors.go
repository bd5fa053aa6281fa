package repository

import "errors"

var (
	// ErrNotFound is returned when the requested profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrEmptyID is returned when a profile ID is empty.
	ErrEmptyID = errors.New("profile id is empty")
)

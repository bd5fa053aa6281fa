package matchstore

import "errors"

var (
	// ErrSwipeNotFound is returned when no swipe exists for the given pair.
	ErrSwipeNotFound = errors.New("swipe not found")
	// ErrMatchNotFound is returned when no match exists for the given pair.
	ErrMatchNotFound = errors.New("match not found")
	// ErrInvalidAction is returned when a swipe carries an unknown action.
	ErrInvalidAction = errors.New("invalid swipe action")
)

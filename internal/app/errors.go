package service

import "errors"

var (
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrInvalidAction is returned when a swipe carries an unknown action.
	ErrInvalidAction = errors.New("invalid swipe action")
	// ErrInvalidAnswers is returned when a submitted profile carries answers
	// that fail questionnaire validation.
	ErrInvalidAnswers = errors.New("invalid answers")
	// ErrSelfSwipe is returned when a user swipes on themselves.
	ErrSelfSwipe = errors.New("cannot swipe on yourself")
	// ErrNoMatchStore is returned by Start when no match store is configured.
	ErrNoMatchStore = errors.New("no match store configured")
)

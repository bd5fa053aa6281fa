package config

import "errors"

var (
	// ErrEmptyAddr is returned when the listen address resolves to empty.
	ErrEmptyAddr = errors.New("addr must not be empty")
	// ErrEmptyRedisAddr is returned when the Redis address resolves to empty.
	ErrEmptyRedisAddr = errors.New("redis_addr must not be empty")
)

// Package config defines service configuration structures and loading hooks.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory embedding refresh queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of embedding refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// CandidateLimit caps how many candidates retrieval considers.
	CandidateLimit int `koanf:"candidate_limit"`

	// MaxLimit caps GET /recommendations?limit.
	MaxLimit int `koanf:"max_limit"`

	// BoostWorkers bounds concurrent live boost computation.
	BoostWorkers int `koanf:"boost_workers"`

	// BoostTimeoutMS bounds each boost computation in milliseconds.
	BoostTimeoutMS int `koanf:"boost_timeout_ms"`

	// EmbedURL is the sentence-embedding inference endpoint. Empty disables
	// the embedding pipeline; boosts stay neutral.
	EmbedURL string `koanf:"embed_url"`

	// EmbedAPIKey is the bearer token for the inference endpoint.
	EmbedAPIKey string `koanf:"embed_api_key"`

	// EmbedTimeoutMS bounds each embedding request in milliseconds.
	EmbedTimeoutMS int `koanf:"embed_timeout_ms"`

	// RedisAddr is the address of the swipe and match store.
	RedisAddr string `koanf:"redis_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		QueueSize:      10_000,
		WorkerCount:    runtime.NumCPU() * 2,
		DedupeSize:     50_000,
		CandidateLimit: 200,
		MaxLimit:       50,
		BoostWorkers:   8,
		BoostTimeoutMS: 5_000,
		EmbedTimeoutMS: 10_000,
		RedisAddr:      "localhost:6379",
	}
}

package embedding

import "errors"

var (
	// ErrEmptyText is returned when the text to embed is empty.
	ErrEmptyText = errors.New("text is empty")
	// ErrRequestFailed is returned when the inference service rejects the
	// request after all retries are exhausted.
	ErrRequestFailed = errors.New("embedding request failed")
	// ErrMalformedResponse is returned when the inference service responds
	// with a body that cannot be decoded into a vector.
	ErrMalformedResponse = errors.New("malformed embedding response")
)

package queue

import "errors"

// ErrQueueClosed is returned when enqueuing on a closed queue.
var ErrQueueClosed = errors.New("queue is closed")

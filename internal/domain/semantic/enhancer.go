// Package semantic layers a bounded multiplicative boost on top of the
// deterministic compatibility score, derived from the semantic similarity
// of two free-text personality descriptions.
package semantic

import (
	"context"
	"time"

	"github.com/okian/duet/pkg/logger"
	"github.com/okian/duet/pkg/metrics"
)

// Boost bounds. The boost factor always stays inside [MinBoost, MaxBoost];
// any provider failure degrades to NeutralBoost.
const (
	MinBoost     = 0.9
	MaxBoost     = 1.1
	NeutralBoost = 1.0

	defaultEmbedTimeout = 5 * time.Second
)

// EmbeddingProvider turns text into a vector. Implementations talk to an
// external model and may fail; the enhancer absorbs every failure.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Option applies a configuration option to the Enhancer.
type Option func(*Enhancer)

// WithTimeout bounds each boost computation.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Enhancer) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the enhancer.
func WithLogger(l logger.Logger) Option {
	return func(e *Enhancer) {
		if l != nil {
			e.logger = l
		}
	}
}

// Enhancer computes boost factors from personality text similarity.
type Enhancer struct {
	provider EmbeddingProvider
	timeout  time.Duration
	logger   logger.Logger
}

// NewEnhancer creates an enhancer backed by the given provider.
func NewEnhancer(provider EmbeddingProvider, opts ...Option) *Enhancer {
	e := &Enhancer{
		provider: provider,
		timeout:  defaultEmbedTimeout,
		logger:   logger.Get().Named("semantic"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Boost maps the cosine similarity of the two texts from [-1,1] onto
// [MinBoost, MaxBoost]. Provider failures of any kind - errors, timeouts,
// malformed vectors - are absorbed locally and yield NeutralBoost; they are
// never propagated to the caller.
func (e *Enhancer) Boost(ctx context.Context, textA, textB string) float64 {
	start := time.Now()
	defer func() {
		metrics.RecordBoostLatency(float64(time.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	va, err := e.provider.Embed(ctx, textA)
	if err != nil {
		return e.neutral(ctx, err)
	}
	vb, err := e.provider.Embed(ctx, textB)
	if err != nil {
		return e.neutral(ctx, err)
	}
	if len(va) == 0 || len(vb) == 0 || len(va) != len(vb) {
		return e.neutral(ctx, nil)
	}

	return BoostFromSimilarity(CosineSimilarity(va, vb))
}

// BoostFromSimilarity maps a cosine similarity in [-1,1] onto the boost
// range. Callers holding precomputed vectors use it directly and skip the
// provider round trips.
func BoostFromSimilarity(similarity float64) float64 {
	boost := MinBoost + (similarity+1)/2*(MaxBoost-MinBoost)
	return clamp(MinBoost, MaxBoost, boost)
}

// neutral records the degradation and returns the neutral factor.
func (e *Enhancer) neutral(ctx context.Context, err error) float64 {
	metrics.RecordBoostFallback()
	if err != nil {
		e.logger.Warn(ctx, "boost degraded to neutral", logger.Error(err))
	} else {
		e.logger.Warn(ctx, "boost degraded to neutral: malformed embedding")
	}
	return NeutralBoost
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

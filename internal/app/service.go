// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/duet/internal/adapters/matchstore"
	eventqueue "github.com/okian/duet/internal/adapters/mq/queue"
	workerpool "github.com/okian/duet/internal/adapters/mq/worker"
	"github.com/okian/duet/internal/adapters/repository"
	"github.com/okian/duet/internal/domain/compat"
	"github.com/okian/duet/internal/domain/dedupe"
	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/questionnaire"
	"github.com/okian/duet/internal/domain/semantic"
	"github.com/okian/duet/pkg/logger"
	"github.com/okian/duet/pkg/metrics"
)

// MatchStore persists swipes and mutual matches.
type MatchStore interface {
	RecordSwipe(ctx context.Context, swipe model.Swipe) error
	GetSwipe(ctx context.Context, fromID, toID string) (model.Action, error)
	UpsertMatch(ctx context.Context, userA, userB string, super bool, score float64) (model.Match, bool, error)
	Decided(ctx context.Context, userID string) (map[string]struct{}, error)
	MatchCount(ctx context.Context) (int, error)
}

// Stats is a snapshot of service state for the stats endpoint.
type Stats struct {
	TotalProfiles    int   `json:"total_profiles"`
	EmbeddedProfiles int   `json:"embedded_profiles"`
	TotalMatches     int   `json:"total_matches"`
	QueueDepth       int   `json:"queue_depth"`
	DedupeSize       int64 `json:"dedupe_size"`
}

// Service wires the scoring engine, profile store, refresh pipeline and
// match store into the operations the HTTP API needs.
type Service struct {
	mu sync.RWMutex

	// Core components
	profiles   *repository.Store
	matches    MatchStore
	registry   *questionnaire.Registry
	engine     *compat.Engine
	enhancer   *semantic.Enhancer
	embedder   semantic.EmbeddingProvider
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	candidateLimit int
	maxLimit       int
	boostWorkers   int
	boostTimeout   time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of embedding refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the refresh event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithCandidateLimit caps how many candidates retrieval considers per request.
func WithCandidateLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.candidateLimit = limit
		}
	}
}

// WithMaxLimit caps the number of recommendations returned per request.
func WithMaxLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// WithBoostWorkers sets the concurrency of live boost computation.
func WithBoostWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.boostWorkers = n
		}
	}
}

// WithBoostTimeout bounds each live boost computation.
func WithBoostTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.boostTimeout = d
		}
	}
}

// WithEmbedder sets the embedding provider. Without one, refresh events are
// skipped and every boost is neutral.
func WithEmbedder(p semantic.EmbeddingProvider) Option {
	return func(s *Service) {
		s.embedder = p
	}
}

// WithMatchStore sets the swipe and match persistence backend.
func WithMatchStore(m MatchStore) Option {
	return func(s *Service) {
		s.matches = m
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU() * 2,
		queueSize:      10000,
		dedupeSize:     50000,
		candidateLimit: 200,
		maxLimit:       50,
		boostWorkers:   8,
		boostTimeout:   5 * time.Second,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.matches == nil {
		return ErrNoMatchStore
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting matching service...")

	s.profiles = repository.NewStore()
	s.registry = questionnaire.Default()
	s.engine = compat.NewEngine(compat.WithRegistry(s.registry))
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)

	if s.embedder != nil {
		s.enhancer = semantic.NewEnhancer(s.embedder,
			semantic.WithTimeout(s.boostTimeout),
			semantic.WithLogger(s.logger.Named("enhancer")),
		)
		s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.embedder, s.profiles)
		s.workerPool.Start(ctx)
	} else {
		s.logger.Warn(ctx, "no embedding provider configured, boosts are neutral")
	}

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	} else if s.eventQueue != nil {
		_ = s.eventQueue.Close()
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// SubmitProfile validates and stores a profile, then schedules an embedding
// refresh. A profile with an empty ID gets a generated one.
func (s *Service) SubmitProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	if !s.isStarted() {
		return model.Profile{}, ErrNotStarted
	}

	if fieldErrors, _ := s.ValidateAnswers(ctx, p.Answers); len(fieldErrors) > 0 {
		return model.Profile{}, fmt.Errorf("%w: %d invalid answers", ErrInvalidAnswers, len(fieldErrors))
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return model.Profile{}, err
	}

	if s.embedder != nil {
		event := eventqueue.Event{
			EventID:   uuid.NewString(),
			ProfileID: p.ID,
			Text:      p.EmbeddingText(),
			TS:        time.Now().UTC(),
		}
		if !s.eventQueue.Enqueue(ctx, event) {
			// The profile is stored either way; the vector catches up on
			// the next update.
			s.logger.Warn(ctx, "refresh queue full, embedding deferred",
				logger.String("profileID", p.ID))
		}
	}

	stored, err := s.profiles.Get(ctx, p.ID)
	if err != nil {
		return model.Profile{}, err
	}
	return stored, nil
}

// Profile returns the stored profile with the given ID.
func (s *Service) Profile(ctx context.Context, id string) (model.Profile, error) {
	if !s.isStarted() {
		return model.Profile{}, ErrNotStarted
	}
	return s.profiles.Get(ctx, id)
}

// Questions returns the full questionnaire grouped by category, in catalog
// order.
func (s *Service) Questions(ctx context.Context) map[string][]questionnaire.Question {
	out := make(map[string][]questionnaire.Question, len(questionnaire.Categories()))
	for _, c := range questionnaire.Categories() {
		out[c.String()] = questionnaire.Default().ByCategory(c)
	}
	return out
}

// ValidateAnswers checks every answer against the questionnaire and returns
// per-question errors plus advisory consistency warnings. Unknown question
// ids and out-of-domain values are both reported.
func (s *Service) ValidateAnswers(ctx context.Context, answers model.AnswerSet) (map[string]string, []string) {
	registry := questionnaire.Default()
	fieldErrors := make(map[string]string)
	for id, value := range answers {
		if _, ok := registry.Lookup(id); !ok {
			fieldErrors[id] = "unknown question"
			continue
		}
		if !registry.Validate(id, value) {
			fieldErrors[id] = "invalid answer value"
		}
	}
	return fieldErrors, semantic.DetectInconsistencies(answers)
}

// Recommendations returns up to limit candidates for the user, ranked by
// boosted compatibility. Candidates with a deal-breaker conflict or no
// shared answers are dropped.
func (s *Service) Recommendations(ctx context.Context, userID string, limit int) ([]model.Recommendation, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	me, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	decided, err := s.matches.Decided(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading decided pairs: %w", err)
	}

	candidates, err := s.profiles.Similar(ctx, userID, s.candidateLimit, decided)
	if err != nil {
		return nil, err
	}

	recs := s.scoreCandidates(ctx, me, candidates)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CompatibilityPercentage > recs[j].CompatibilityPercentage
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	metrics.RecordRecommendationsServed(len(recs))
	return recs, nil
}

// scoreCandidates runs the engine over every candidate and applies the
// semantic boost with bounded concurrency.
func (s *Service) scoreCandidates(ctx context.Context, me model.Profile, candidates []model.Candidate) []model.Recommendation {
	type slot struct {
		rec model.Recommendation
		ok  bool
	}

	slots := make([]slot, len(candidates))
	sem := make(chan struct{}, s.boostWorkers)
	var wg sync.WaitGroup

	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand model.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rec, ok := s.scoreCandidate(ctx, me, cand)
			slots[i] = slot{rec: rec, ok: ok}
		}(i, cand)
	}
	wg.Wait()

	recs := make([]model.Recommendation, 0, len(candidates))
	for _, sl := range slots {
		if sl.ok {
			recs = append(recs, sl.rec)
		}
	}
	return recs
}

// scoreCandidate scores one pair. The second return value is false when the
// candidate must be dropped.
func (s *Service) scoreCandidate(ctx context.Context, me model.Profile, cand model.Candidate) (model.Recommendation, bool) {
	start := time.Now()
	result := s.engine.Score(me.Answers, cand.Answers)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordScoreComputed()

	if len(result.DealBreakers) > 0 {
		metrics.RecordDealBreaker()
		return model.Recommendation{}, false
	}

	// A pair with no shared answers stays in the list at score 0 and
	// sorts to the bottom.
	boost := s.boostFor(ctx, me, cand)
	blended := round1(clamp(0, 100, result.OverallScore*boost))

	return model.Recommendation{
		Profile:                 cand.Profile,
		SimilarityScore:         cand.Similarity,
		CompatibilityPercentage: blended,
		Details: model.CompatibilityDetails{
			Score:          result.OverallScore,
			Confidence:     result.Confidence,
			CategoryScores: result.CategoryScores,
			Strengths:      result.Strengths,
			Explanation:    result.Explanation,
			Boost:          boost,
		},
	}, true
}

// boostFor prefers the stored embedding similarity; a pair missing a stored
// vector falls back to a live embedding call, and no provider at all means
// the neutral factor.
func (s *Service) boostFor(ctx context.Context, me model.Profile, cand model.Candidate) float64 {
	if len(me.Embedding) > 0 && len(cand.Embedding) > 0 {
		return semantic.BoostFromSimilarity(semantic.CosineSimilarity(me.Embedding, cand.Embedding))
	}
	if s.enhancer != nil {
		return s.enhancer.Boost(ctx, me.EmbeddingText(), cand.EmbeddingText())
	}
	return semantic.NeutralBoost
}

// Swipe records a decision and creates a match when it is mutual. Repeats of
// the same decision are deduplicated for metrics but still answered with the
// current pair state.
func (s *Service) Swipe(ctx context.Context, fromID, toID string, action model.Action) (model.SwipeResult, error) {
	if !s.isStarted() {
		return model.SwipeResult{}, ErrNotStarted
	}
	if !action.Valid() {
		return model.SwipeResult{}, ErrInvalidAction
	}
	if fromID == toID {
		return model.SwipeResult{}, ErrSelfSwipe
	}

	me, err := s.profiles.Get(ctx, fromID)
	if err != nil {
		return model.SwipeResult{}, fmt.Errorf("swiper %s: %w", fromID, err)
	}
	target, err := s.profiles.Get(ctx, toID)
	if err != nil {
		return model.SwipeResult{}, fmt.Errorf("target %s: %w", toID, err)
	}

	if err := s.matches.RecordSwipe(ctx, model.Swipe{
		FromID: fromID,
		ToID:   toID,
		Action: action,
		At:     time.Now().UTC(),
	}); err != nil {
		return model.SwipeResult{}, err
	}

	dedupeKey := fromID + ":" + toID + ":" + string(action)
	if !s.deduper.SeenAndRecord(ctx, dedupeKey) {
		metrics.RecordSwipe(string(action))
	}

	result := model.SwipeResult{SwipeRecorded: true}
	if !action.Positive() {
		return result, nil
	}

	reverse, err := s.matches.GetSwipe(ctx, toID, fromID)
	if err != nil {
		// No decision from the other side yet is the common case; real
		// storage failures surface.
		if errors.Is(err, matchstore.ErrSwipeNotFound) {
			return result, nil
		}
		return model.SwipeResult{}, err
	}
	if !reverse.Positive() {
		return result, nil
	}

	compatResult := s.engine.Score(me.Answers, target.Answers)
	boost := s.boostFor(ctx, me, model.Candidate{Profile: target})
	score := round1(clamp(0, 100, compatResult.OverallScore*boost))
	super := action == model.ActionSuper || reverse == model.ActionSuper

	match, created, err := s.matches.UpsertMatch(ctx, fromID, toID, super, score)
	if err != nil {
		return model.SwipeResult{}, err
	}
	if created {
		metrics.RecordMatchCreated(super)
		s.logger.Info(ctx, "match created",
			logger.String("matchID", match.ID),
			logger.Bool("super", super),
			logger.Float64("score", score),
		)
	}

	result.MatchCreated = true
	result.MatchID = match.ID
	result.SuperMatch = match.Super
	result.CompatibilityScore = score
	result.Details = &model.CompatibilityDetails{
		Score:          compatResult.OverallScore,
		Confidence:     compatResult.Confidence,
		CategoryScores: compatResult.CategoryScores,
		Strengths:      compatResult.Strengths,
		Explanation:    compatResult.Explanation,
		Boost:          boost,
	}
	return result, nil
}

// Score computes the compatibility of two stored profiles without recording
// anything.
func (s *Service) Score(ctx context.Context, aID, bID string) (compat.Result, error) {
	if !s.isStarted() {
		return compat.Result{}, ErrNotStarted
	}
	a, err := s.profiles.Get(ctx, aID)
	if err != nil {
		return compat.Result{}, err
	}
	b, err := s.profiles.Get(ctx, bID)
	if err != nil {
		return compat.Result{}, err
	}
	return s.engine.Score(a.Answers, b.Answers), nil
}

// Stats returns a snapshot of service state.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if !s.isStarted() {
		return Stats{}, ErrNotStarted
	}

	matchCount, err := s.matches.MatchCount(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting matches: %w", err)
	}

	return Stats{
		TotalProfiles:    s.profiles.Count(ctx),
		EmbeddedProfiles: s.profiles.EmbeddedCount(ctx),
		TotalMatches:     matchCount,
		QueueDepth:       s.eventQueue.Len(ctx),
		DedupeSize:       s.deduper.Size(),
	}, nil
}

// Healthy reports whether the service and its match store are reachable.
func (s *Service) Healthy(ctx context.Context) error {
	if !s.isStarted() {
		return ErrNotStarted
	}
	if pinger, ok := s.matches.(interface{ Ping(context.Context) error }); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
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

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

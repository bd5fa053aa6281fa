// Package matchstore persists swipes and mutual matches in Redis.
package matchstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/pkg/logger"
)

// Key layout:
//
//	swipe:{from}:{to}  -> action string ("yes", "no", "super")
//	match:{lo}:{hi}    -> hash {id, is_super, score, created_at}
//
// Match keys use the canonical pair order so a pair maps to one key
// regardless of which side swiped last.
const (
	swipeKeyPrefix = "swipe:"
	matchKeyPrefix = "match:"
)

// Store persists swipes and matches through a Redis client.
type Store struct {
	client *redis.Client
	logger logger.Logger
}

// NewStore creates a match store over the given Redis client.
func NewStore(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		logger: logger.Get().Named("matchstore"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// RecordSwipe stores the latest decision from one user about another.
// A repeated swipe on the same pair overwrites the previous decision.
func (s *Store) RecordSwipe(ctx context.Context, swipe model.Swipe) error {
	if !swipe.Action.Valid() {
		return ErrInvalidAction
	}
	key := swipeKey(swipe.FromID, swipe.ToID)
	if err := s.client.Set(ctx, key, string(swipe.Action), 0).Err(); err != nil {
		return fmt.Errorf("recording swipe: %w", err)
	}
	return nil
}

// GetSwipe returns the recorded decision from one user about another.
func (s *Store) GetSwipe(ctx context.Context, fromID, toID string) (model.Action, error) {
	val, err := s.client.Get(ctx, swipeKey(fromID, toID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSwipeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading swipe: %w", err)
	}
	return model.Action(val), nil
}

// UpsertMatch records a mutual match for the pair. The first writer creates
// the match ID; later calls refresh the super flag and score but keep the
// identity and creation time stable.
func (s *Store) UpsertMatch(ctx context.Context, userA, userB string, super bool, score float64) (model.Match, bool, error) {
	pair := model.PairID(userA, userB)
	key := matchKeyPrefix + pair

	created, err := s.client.HSetNX(ctx, key, "id", uuid.NewString()).Result()
	if err != nil {
		return model.Match{}, false, fmt.Errorf("creating match: %w", err)
	}
	if created {
		if err := s.client.HSet(ctx, key, "created_at", time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
			return model.Match{}, false, fmt.Errorf("stamping match: %w", err)
		}
	}
	if err := s.client.HSet(ctx, key,
		"is_super", strconv.FormatBool(super),
		"score", strconv.FormatFloat(score, 'f', -1, 64),
	).Err(); err != nil {
		return model.Match{}, false, fmt.Errorf("updating match: %w", err)
	}

	match, err := s.readMatch(ctx, key, pair)
	if err != nil {
		return model.Match{}, false, err
	}
	return match, created, nil
}

// GetMatch returns the match for the pair, if any.
func (s *Store) GetMatch(ctx context.Context, userA, userB string) (model.Match, error) {
	pair := model.PairID(userA, userB)
	match, err := s.readMatch(ctx, matchKeyPrefix+pair, pair)
	if err != nil {
		return model.Match{}, err
	}
	return match, nil
}

// Decided returns the set of profile IDs the user has already swiped on.
// Recommendation retrieval uses it to exclude settled pairs.
func (s *Store) Decided(ctx context.Context, userID string) (map[string]struct{}, error) {
	prefix := swipeKeyPrefix + userID + ":"
	decided := make(map[string]struct{})

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning swipes: %w", err)
		}
		for _, k := range keys {
			decided[strings.TrimPrefix(k, prefix)] = struct{}{}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return decided, nil
}

// MatchCount returns the number of persisted matches.
func (s *Store) MatchCount(ctx context.Context) (int, error) {
	count := 0
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, matchKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("scanning matches: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return count, nil
}

func (s *Store) readMatch(ctx context.Context, key, pair string) (model.Match, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return model.Match{}, fmt.Errorf("reading match: %w", err)
	}
	if len(fields) == 0 {
		return model.Match{}, ErrMatchNotFound
	}

	userA, userB, ok := strings.Cut(pair, ":")
	if !ok {
		return model.Match{}, fmt.Errorf("malformed pair id %q", pair)
	}

	match := model.Match{
		ID:    fields["id"],
		UserA: userA,
		UserB: userB,
		Super: fields["is_super"] == "true",
	}
	if raw, ok := fields["score"]; ok {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			match.Score = score
		}
	}
	if raw, ok := fields["created_at"]; ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			match.CreatedAt = ts
		}
	}
	return match, nil
}

func swipeKey(fromID, toID string) string {
	return swipeKeyPrefix + fromID + ":" + toID
}

// Package repository provides the in-memory profile store with vector
// candidate retrieval.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/semantic"
	"github.com/okian/duet/pkg/metrics"
)

// Store keeps profiles and their embedding vectors in memory. Candidate
// retrieval is a full cosine scan over the stored vectors, which is ample
// for an event-scale population.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

// NewStore creates an empty profile store.
func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*model.Profile),
	}
}

// Upsert inserts or replaces a profile. The stored copy keeps any embedding
// already held for the same ID so a profile update does not blank the vector
// while a refresh is in flight.
func (s *Store) Upsert(ctx context.Context, p model.Profile) error {
	if p.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p
	stored.Answers = p.Answers.Clone()
	stored.UpdatedAt = time.Now().UTC()
	if len(stored.Embedding) == 0 {
		if prev, ok := s.profiles[p.ID]; ok {
			stored.Embedding = prev.Embedding
		}
	}
	s.profiles[p.ID] = &stored

	metrics.UpdateTotalProfiles(len(s.profiles))
	return nil
}

// Get returns a copy of the profile with the given ID.
func (s *Store) Get(ctx context.Context, id string) (model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return model.Profile{}, ErrNotFound
	}
	return clone(p), nil
}

// SetEmbedding attaches a freshly computed embedding vector to a profile.
// An unknown ID is reported so the caller can drop stale refresh events.
func (s *Store) SetEmbedding(ctx context.Context, id string, vec []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return ErrNotFound
	}
	p.Embedding = append([]float64(nil), vec...)
	return nil
}

// Similar returns up to limit candidate profiles ranked by cosine similarity
// to the given profile's embedding, most similar first. The requester and any
// ID in exclude are skipped. Candidates without an embedding, or a requester
// without one, score zero and sort after embedded candidates.
func (s *Store) Similar(ctx context.Context, id string, limit int, exclude map[string]struct{}) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	me, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}

	candidates := make([]model.Candidate, 0, len(s.profiles))
	for cid, p := range s.profiles {
		if cid == id {
			continue
		}
		if _, skip := exclude[cid]; skip {
			continue
		}
		candidates = append(candidates, model.Candidate{
			Profile:    clone(p),
			Similarity: semantic.CosineSimilarity(me.Embedding, p.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].Profile.ID < candidates[j].Profile.ID
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// Count returns the number of stored profiles.
func (s *Store) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// EmbeddedCount returns the number of profiles that carry an embedding.
func (s *Store) EmbeddedCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.profiles {
		if len(p.Embedding) > 0 {
			n++
		}
	}
	return n
}

func clone(p *model.Profile) model.Profile {
	out := *p
	out.Answers = p.Answers.Clone()
	out.Embedding = append([]float64(nil), p.Embedding...)
	out.Hobbies = append([]string(nil), p.Hobbies...)
	if p.Socials != nil {
		out.Socials = make(map[string]string, len(p.Socials))
		for k, v := range p.Socials {
			out.Socials[k] = v
		}
	}
	return out
}

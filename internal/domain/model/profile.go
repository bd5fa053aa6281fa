// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AnswerSet maps question ids to raw answer values. Values are strings for
// multiple-choice questions and float64 for sliders, matching the JSON wire
// shape. Answers must be validated against the questionnaire registry before
// they reach the scoring engine.
type AnswerSet map[string]any

// Clone returns a shallow copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return nil
	}
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Profile holds a user's matchmaking profile.
type Profile struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Bio         string            `json:"bio"`
	Grade       string            `json:"grade"`
	Gender      string            `json:"gender"`
	Hobbies     []string          `json:"hobbies"`
	Personality string            `json:"personality"`
	Socials     map[string]string `json:"socials,omitempty"`
	PhotoURL    string            `json:"photo_url,omitempty"`
	Answers     AnswerSet         `json:"answers"`
	Embedding   []float64         `json:"-"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// EmbeddingText assembles the semantic text used to embed a profile.
// Hobbies are partially repeated so they carry more weight in the vector.
func (p Profile) EmbeddingText() string {
	const topHobbies = 3

	var parts []string
	if p.Name != "" {
		parts = append(parts, fmt.Sprintf("My name is %s.", p.Name))
	}
	if p.Grade != "" {
		parts = append(parts, fmt.Sprintf("I am a %s in high school.", p.Grade))
	}
	if p.Bio != "" {
		parts = append(parts, fmt.Sprintf("About me: %s", p.Bio))
	}
	if len(p.Hobbies) > 0 {
		parts = append(parts, fmt.Sprintf("My hobbies and interests include: %s.", strings.Join(p.Hobbies, ", ")))
		top := p.Hobbies
		if len(top) > topHobbies {
			top = top[:topHobbies]
		}
		parts = append(parts, fmt.Sprintf("I love %s.", strings.Join(top, ", ")))
	}
	if p.Personality != "" {
		parts = append(parts, fmt.Sprintf("My personality: %s", p.Personality))
	}
	if len(p.Answers) > 0 {
		ids := make([]string, 0, len(p.Answers))
		for id := range p.Answers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("Q: %s A: %v", id, p.Answers[id]))
		}
	}
	return strings.Join(parts, " ")
}

// Candidate is a profile returned by candidate retrieval together with its
// raw vector similarity to the requester.
type Candidate struct {
	Profile
	Similarity float64 `json:"similarity"`
}

// EmbeddingRefresh is the event placed on the refresh queue when a profile
// is created or updated and its embedding must be regenerated.
type EmbeddingRefresh struct {
	EventID   string    // unique id for idempotency
	ProfileID string    // subject profile identifier
	Text      string    // assembled embedding text
	TS        time.Time // event timestamp
}

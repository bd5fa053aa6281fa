package model

import "time"

// Action is a recorded swipe decision.
type Action string

// Swipe actions.
const (
	ActionYes   Action = "yes"
	ActionNo    Action = "no"
	ActionSuper Action = "super"
)

// Valid reports whether the action is one of the known swipe decisions.
func (a Action) Valid() bool {
	switch a {
	case ActionYes, ActionNo, ActionSuper:
		return true
	}
	return false
}

// Positive reports whether the action counts toward a mutual match.
func (a Action) Positive() bool {
	return a == ActionYes || a == ActionSuper
}

// Swipe records one user's decision about another.
type Swipe struct {
	FromID string    `json:"from_id"`
	ToID   string    `json:"to_id"`
	Action Action    `json:"action"`
	At     time.Time `json:"at"`
}

// PairID normalizes two participant ids into a canonical order so a pair is
// represented once regardless of swipe direction.
func PairID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// Match is a persisted mutual match between two users.
type Match struct {
	ID        string    `json:"id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	Super     bool      `json:"is_super_match"`
	Score     float64   `json:"compatibility_score"`
	CreatedAt time.Time `json:"created_at"`
}

// CompatibilityDetails is the explainable breakdown attached to
// recommendations and swipe results.
type CompatibilityDetails struct {
	Score          float64            `json:"score"`
	Confidence     float64            `json:"confidence"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Strengths      []string           `json:"strengths"`
	Explanation    string             `json:"explanation"`
	Boost          float64            `json:"boost"`
}

// Recommendation is a ranked candidate with its blended compatibility score.
type Recommendation struct {
	Profile                 Profile              `json:"profile"`
	SimilarityScore         float64              `json:"similarity_score"`
	CompatibilityPercentage float64              `json:"compatibility_percentage"`
	Details                 CompatibilityDetails `json:"compatibility_details"`
}

// SwipeResult reports the outcome of recording a swipe.
type SwipeResult struct {
	SwipeRecorded      bool                  `json:"swipe_recorded"`
	MatchCreated       bool                  `json:"match_created"`
	MatchID            string                `json:"match_id,omitempty"`
	SuperMatch         bool                  `json:"is_super_match"`
	CompatibilityScore float64               `json:"compatibility_score,omitempty"`
	Details            *CompatibilityDetails `json:"compatibility_details,omitempty"`
}

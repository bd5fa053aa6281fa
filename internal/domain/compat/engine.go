// Package compat implements the deterministic compatibility scoring engine.
//
// The engine is a pure function over two validated answer sets: it computes
// a deal-breaker check, per-category similarity, a weighted aggregate score
// on a 0-100 scale, a confidence estimate from answer completeness, and a
// human-readable explanation. It holds no mutable state and is safe for
// concurrent use.
package compat

import (
	"math"
	"sort"

	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/questionnaire"
)

// Result is the outcome of scoring two answer sets.
// If DealBreakers is non-empty, OverallScore is 0 and CategoryScores is empty.
type Result struct {
	OverallScore   float64            `json:"overall_score"`
	Confidence     float64            `json:"confidence"`
	CategoryScores map[string]float64 `json:"category_scores"`
	DealBreakers   []string           `json:"deal_breakers"`
	Strengths      []string           `json:"strengths"`
	Explanation    string             `json:"explanation"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRegistry sets the questionnaire registry used for scoring.
func WithRegistry(r *questionnaire.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithRules replaces the deal-breaker rule set.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		if len(rules) > 0 {
			e.rules = rules
		}
	}
}

// Engine computes compatibility scores. Construct once and share freely.
type Engine struct {
	registry *questionnaire.Registry
	rules    []Rule
}

// NewEngine creates an engine with the default registry and rules.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: questionnaire.Default(),
		rules:    DefaultRules(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Score computes the compatibility between two answer sets.
//
// Empty answer sets on either side are a defined outcome, not an error:
// no categories score, the aggregate is 0 and confidence is 0.
func (e *Engine) Score(a, b model.AnswerSet) Result {
	// Step 1: deal-breakers short-circuit everything else.
	if breakers := e.checkDealBreakers(a, b); len(breakers) > 0 {
		return Result{
			OverallScore:   0.0,
			Confidence:     1.0,
			CategoryScores: map[string]float64{},
			DealBreakers:   breakers,
			Strengths:      []string{},
			Explanation:    dealBreakerExplanation(breakers),
		}
	}

	// Step 2: per-category similarity. The deal_breakers category is
	// excluded: it was already resolved above and its negative weight
	// signals override, not aggregation.
	categoryScores := make(map[string]float64)
	var weightedSum, totalWeight float64
	for _, c := range questionnaire.Categories() {
		if c == questionnaire.CategoryDealBreakers {
			continue
		}
		score, scored := e.categoryScore(c, a, b)
		if !scored {
			continue
		}
		w := math.Abs(c.Weight())
		categoryScores[c.String()] = score
		weightedSum += score * w
		totalWeight += w
	}

	// Step 3: aggregate to a 0-100 scale.
	var overall float64
	if totalWeight > 0 {
		overall = weightedSum / totalWeight * 100
	}

	// Strengths rank on the raw scores; rounding is output-only.
	strengths := e.strengths(categoryScores)

	rounded := make(map[string]float64, len(categoryScores))
	for name, score := range categoryScores {
		rounded[name] = round1(score)
	}

	return Result{
		OverallScore:   round1(overall),
		Confidence:     round2(e.confidence(a, b)),
		CategoryScores: rounded,
		DealBreakers:   []string{},
		Strengths:      strengths,
		Explanation:    explanation(overall, strengths),
	}
}

// categoryScore computes the weighted-average similarity for one category.
// Questions unanswered by either party are skipped entirely; a category
// with no question answered by both parties yields no score at all.
func (e *Engine) categoryScore(c questionnaire.Category, a, b model.AnswerSet) (float64, bool) {
	var weightedSim, weightSum float64
	for _, q := range e.registry.ByCategory(c) {
		av, aok := a[q.ID]
		bv, bok := b[q.ID]
		if !aok || !bok {
			continue
		}
		sim, ok := questionSimilarity(q, av, bv)
		if !ok {
			continue
		}
		weightedSim += sim * q.Weight
		weightSum += q.Weight
	}
	if weightSum == 0 {
		return 0, false
	}
	return weightedSim / weightSum, true
}

// questionSimilarity computes the similarity of two answers to one question.
// Multiple choice is exact match only; sliders use linear distance
// normalized by the declared range.
func questionSimilarity(q questionnaire.Question, a, b any) (float64, bool) {
	switch q.Type {
	case questionnaire.MultipleChoice:
		as, aok := a.(string)
		bs, bok := b.(string)
		if !aok || !bok {
			return 0, false
		}
		if as == bs {
			return 1.0, true
		}
		return 0.0, true
	case questionnaire.Slider:
		an, aok := asNumber(a)
		bn, bok := asNumber(b)
		if !aok || !bok {
			return 0, false
		}
		sim := 1.0 - math.Abs(an-bn)/(q.Max-q.Min)
		return math.Max(0, sim), true
	}
	return 0, false
}

// confidence is the fraction of the full catalog answered by both parties.
func (e *Engine) confidence(a, b model.AnswerSet) float64 {
	total := e.registry.Count()
	if total == 0 {
		return 0
	}
	both := 0
	for _, q := range e.registry.Questions() {
		if _, ok := a[q.ID]; !ok {
			continue
		}
		if _, ok := b[q.ID]; !ok {
			continue
		}
		both++
	}
	return float64(both) / float64(total)
}

// strengthThreshold is the minimum category score highlighted as a strength.
const strengthThreshold = 0.7

// strengths picks up to the top three categories scoring at or above the
// threshold, ordered by score descending with catalog order breaking ties.
func (e *Engine) strengths(categoryScores map[string]float64) []string {
	type ranked struct {
		name  string
		order int
		score float64
	}
	var rankedScores []ranked
	for i, c := range questionnaire.Categories() {
		name := c.String()
		if score, ok := categoryScores[name]; ok {
			rankedScores = append(rankedScores, ranked{name: name, order: i, score: score})
		}
	}
	sort.SliceStable(rankedScores, func(i, j int) bool {
		if rankedScores[i].score != rankedScores[j].score {
			return rankedScores[i].score > rankedScores[j].score
		}
		return rankedScores[i].order < rankedScores[j].order
	})

	strengths := []string{}
	for _, r := range rankedScores {
		if len(strengths) == 3 {
			break
		}
		if r.score >= strengthThreshold {
			strengths = append(strengths, strengthMessage(r.name))
		}
	}
	return strengths
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

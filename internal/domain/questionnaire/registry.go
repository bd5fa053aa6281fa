package questionnaire

import "sync"

// Registry provides read-only access to the question catalog.
type Registry struct {
	questions  []Question
	byID       map[string]Question
	byCategory map[Category][]Question
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, built once from the catalog.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// New builds a registry from the static catalog. Question order is stable:
// category declaration order, then question declaration order within each
// category.
func New() *Registry {
	r := &Registry{
		byID:       make(map[string]Question),
		byCategory: make(map[Category][]Question),
	}
	for _, c := range Categories() {
		for _, q := range catalog[c] {
			q.Category = c
			if q.Weight == 0 {
				q.Weight = 1.0
			}
			r.questions = append(r.questions, q)
			r.byID[q.ID] = q
			r.byCategory[c] = append(r.byCategory[c], q)
		}
	}
	return r
}

// Questions returns all questions in stable catalog order.
func (r *Registry) Questions() []Question {
	out := make([]Question, len(r.questions))
	copy(out, r.questions)
	return out
}

// ByCategory returns the questions of one category in catalog order.
func (r *Registry) ByCategory(c Category) []Question {
	qs := r.byCategory[c]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// Lookup returns the question with the given id.
func (r *Registry) Lookup(id string) (Question, bool) {
	q, ok := r.byID[id]
	return q, ok
}

// Count returns the number of registered questions.
func (r *Registry) Count() int {
	return len(r.questions)
}

// Validate reports whether value is an acceptable answer for the question.
// It fails closed: unknown ids, type mismatches, out-of-range sliders, and
// unknown option values all return false.
func (r *Registry) Validate(id string, value any) bool {
	q, ok := r.byID[id]
	if !ok {
		return false
	}
	switch q.Type {
	case MultipleChoice:
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, opt := range q.Options {
			if opt.Value == s {
				return true
			}
		}
		return false
	case Slider:
		n, ok := asNumber(value)
		if !ok {
			return false
		}
		return n >= q.Min && n <= q.Max
	}
	return false
}

// asNumber normalizes numeric answer representations to float64.
// JSON decoding produces float64; callers in tests may pass ints.
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

package compat

import "github.com/okian/duet/internal/domain/model"

// Rule declares one deal-breaker question. If one party answered with the
// hard override value and the other party's answer is outside the accepted
// set, the pair is incompatible regardless of every other category.
// The accepted set is per-rule data, not a universal escape value.
type Rule struct {
	QuestionID string
	Override   string
	Accepted   []string
	Label      string
}

// DefaultRules returns the safety-critical deal-breaker rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			QuestionID: "smoking",
			Override:   "deal_breaker",
			Accepted:   []string{"deal_breaker", "uncomfortable"},
			Label:      "smoking/vaping preferences",
		},
		{
			QuestionID: "substance_attitude",
			Override:   "strictly_no",
			Accepted:   []string{"strictly_no", "uncomfortable"},
			Label:      "substance attitudes",
		},
	}
}

// violated reports whether x is the hard override value while y falls
// outside the accepted set.
func (r Rule) violated(x, y string) bool {
	if x != r.Override {
		return false
	}
	for _, v := range r.Accepted {
		if y == v {
			return false
		}
	}
	return true
}

// checkDealBreakers evaluates every rule symmetrically. A rule only fires
// when both parties answered its question.
func (e *Engine) checkDealBreakers(a, b model.AnswerSet) []string {
	var breakers []string
	for _, rule := range e.rules {
		av, aok := a[rule.QuestionID].(string)
		bv, bok := b[rule.QuestionID].(string)
		if !aok || !bok {
			continue
		}
		if rule.violated(av, bv) || rule.violated(bv, av) {
			breakers = append(breakers, rule.Label)
		}
	}
	return breakers
}

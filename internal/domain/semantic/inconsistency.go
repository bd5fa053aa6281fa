package semantic

import "github.com/okian/duet/internal/domain/model"

// DetectInconsistencies flags answer combinations that pull against each
// other. The result is advisory text for the client; it never affects the
// computed score.
func DetectInconsistencies(answers model.AnswerSet) []string {
	var notes []string

	if social, ok := answers["social_energy"].(string); ok && social == "introvert" {
		if crowd, ok := sliderValue(answers["crowd_comfort"]); ok && crowd >= 4 {
			notes = append(notes, "Social energy and crowd comfort seem inconsistent")
		}
	}

	if energy, ok := sliderValue(answers["energy_level"]); ok && energy >= 4 {
		if style, ok := answers["prom_style"].(string); ok && style == "chill" {
			notes = append(notes, "Energy level and prom style preferences differ")
		}
	}

	return notes
}

func sliderValue(v any) (float64, bool) {
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

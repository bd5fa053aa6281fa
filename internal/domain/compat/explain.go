package compat

import (
	"fmt"
	"strings"
	"unicode"
)

// strengthMessages maps category names to their human-readable strength
// sentences.
var strengthMessages = map[string]string{
	"values":            "You share similar core values",
	"prom_expectations": "You have compatible prom expectations",
	"comfort_levels":    "You have similar comfort levels",
	"communication":     "You communicate well together",
	"personality":       "Your personalities complement each other",
	"vibe":              "You have great chemistry",
	"interests":         "You share common interests",
}

// strengthMessage resolves the sentence for a category, falling back to a
// generic phrase for categories with no registered message.
func strengthMessage(category string) string {
	if msg, ok := strengthMessages[category]; ok {
		return msg
	}
	return fmt.Sprintf("Strong %s match", category)
}

// Explanation tier thresholds on the 0-100 scale.
const (
	tierExcellent = 85
	tierGreat     = 70
	tierGood      = 55
	tierDecent    = 40
)

// explanation builds the tiered human-readable summary of a match.
func explanation(score float64, strengths []string) string {
	var b strings.Builder
	switch {
	case score >= tierExcellent:
		b.WriteString("Excellent match! ")
	case score >= tierGreat:
		b.WriteString("Great match! ")
	case score >= tierGood:
		b.WriteString("Good match! ")
	case score >= tierDecent:
		b.WriteString("Decent match! ")
	default:
		b.WriteString("Potential match! ")
	}

	if len(strengths) == 0 {
		b.WriteString("You have some compatibility across different areas.")
		return b.String()
	}

	b.WriteString(strengths[0])
	b.WriteString(".")
	if len(strengths) > 1 {
		b.WriteString(" Plus, ")
		b.WriteString(lowerFirst(strengths[1]))
		b.WriteString(".")
	}
	return b.String()
}

// dealBreakerExplanation names the triggered breakers.
func dealBreakerExplanation(breakers []string) string {
	return "Incompatible due to: " + strings.Join(breakers, ", ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

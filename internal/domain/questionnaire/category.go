// Package questionnaire holds the immutable question catalog and its
// read-only registry. The catalog is loaded once at startup and never
// mutated, so lookups are safe from any number of concurrent callers.
package questionnaire

// Category groups related questions under one aggregate weight.
type Category int

// The closed set of question categories, in declaration order.
const (
	CategoryPersonality Category = iota
	CategoryValues
	CategoryPromExpectations
	CategoryComfortLevels
	CategoryInterests
	CategoryCommunication
	CategoryDealBreakers
	CategoryVibe
)

var categoryNames = map[Category]string{
	CategoryPersonality:      "personality",
	CategoryValues:           "values",
	CategoryPromExpectations: "prom_expectations",
	CategoryComfortLevels:    "comfort_levels",
	CategoryInterests:        "interests",
	CategoryCommunication:    "communication",
	CategoryDealBreakers:     "deal_breakers",
	CategoryVibe:             "vibe",
}

// categoryWeights determine how important each category is for matching.
// Higher weight = more important. The deal_breakers weight is negative to
// signal override semantics: it never participates in aggregation, it
// zeroes the score outright.
var categoryWeights = map[Category]float64{
	CategoryValues:           2.0,  // most important - core values
	CategoryDealBreakers:     -3.0, // deal-breakers override everything
	CategoryPromExpectations: 1.8,  // very important - night expectations
	CategoryComfortLevels:    1.5,  // important - prevents anxiety
	CategoryCommunication:    1.3,  // important - prevents conflict
	CategoryPersonality:      1.2,  // important - general compatibility
	CategoryVibe:             1.0,  // nice to have
	CategoryInterests:        0.8,  // nice to have - less critical
}

// String returns the wire name of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Weight returns the configured signed weight of the category.
func (c Category) Weight() float64 {
	return categoryWeights[c]
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryPersonality,
		CategoryValues,
		CategoryPromExpectations,
		CategoryComfortLevels,
		CategoryInterests,
		CategoryCommunication,
		CategoryDealBreakers,
		CategoryVibe,
	}
}

package questionnaire

// QuestionType discriminates how a question is answered and scored.
type QuestionType string

// Question types.
const (
	MultipleChoice QuestionType = "multiple_choice"
	Slider         QuestionType = "slider"
)

// Option is one selectable value of a multiple-choice question.
type Option struct {
	Value  string  `json:"value"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Question describes one catalog entry. Multiple-choice questions carry a
// non-empty option list with unique values; sliders carry Min < Max.
type Question struct {
	ID       string       `json:"id"`
	Category Category     `json:"-"`
	Prompt   string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []Option     `json:"options,omitempty"`
	Min      float64      `json:"min,omitempty"`
	Max      float64      `json:"max,omitempty"`
	Default  float64      `json:"default,omitempty"`
	// Weight scales this question's contribution within its category.
	// Zero means unset; the registry normalizes it to 1.0.
	Weight float64 `json:"-"`
}

// CategoryName is exposed for JSON encoding of the catalog.
func (q Question) CategoryName() string { return q.Category.String() }

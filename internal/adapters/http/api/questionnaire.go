package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/questionnaire"
)

// QuestionnaireHandler serves the question catalog and answer validation.
type QuestionnaireHandler struct {
	deps Dependencies
}

// NewQuestionnaireHandler creates a new questionnaire handler.
func NewQuestionnaireHandler(deps Dependencies) *QuestionnaireHandler {
	return &QuestionnaireHandler{deps: deps}
}

type questionnaireResponse struct {
	Categories map[string][]questionnaire.Question `json:"categories"`
	Total      int                                 `json:"total_questions"`
}

// HandleGetQuestionnaire handles GET /questionnaire requests.
func (h *QuestionnaireHandler) HandleGetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	categories := h.deps.Questions(r.Context())
	total := 0
	for _, qs := range categories {
		total += len(qs)
	}
	writeJSON(w, http.StatusOK, questionnaireResponse{
		Categories: categories,
		Total:      total,
	})
}

type validateRequest struct {
	Answers model.AnswerSet `json:"answers"`
}

type validateResponse struct {
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors"`
	Warnings []string          `json:"warnings"`
}

// HandleValidateAnswers handles POST /answers/validate requests.
func (h *QuestionnaireHandler) HandleValidateAnswers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", errors.New("request body must be valid JSON"))
		return
	}

	fieldErrors, warnings := h.deps.ValidateAnswers(r.Context(), req.Answers)
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:    len(fieldErrors) == 0,
		Errors:   fieldErrors,
		Warnings: warnings,
	})
}

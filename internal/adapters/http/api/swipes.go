package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/duet/internal/adapters/repository"
	service "github.com/okian/duet/internal/app"
	"github.com/okian/duet/internal/domain/model"
)

// SwipesHandler records swipe decisions and reports match outcomes.
type SwipesHandler struct {
	deps Dependencies
}

// NewSwipesHandler creates a new swipes handler.
func NewSwipesHandler(deps Dependencies) *SwipesHandler {
	return &SwipesHandler{deps: deps}
}

type swipeRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Action string `json:"action"`
}

func (s swipeRequest) validate() error {
	switch {
	case strings.TrimSpace(s.FromID) == "":
		return errors.New("missing from_id")
	case strings.TrimSpace(s.ToID) == "":
		return errors.New("missing to_id")
	case strings.TrimSpace(s.Action) == "":
		return errors.New("missing action")
	}
	return nil
}

// HandlePostSwipe handles POST /swipes requests.
func (h *SwipesHandler) HandlePostSwipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", errors.New("request body must be valid JSON"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.deps.Swipe(r.Context(), req.FromID, req.ToID, model.Action(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrSelfSwipe):
			writeError(w, http.StatusBadRequest, "invalid_request", err)
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

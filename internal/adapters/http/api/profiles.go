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

// ProfilesHandler serves profile submission and lookup.
type ProfilesHandler struct {
	deps Dependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps Dependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandlePostProfile handles POST /profiles requests.
func (h *ProfilesHandler) HandlePostProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", errors.New("request body must be valid JSON"))
		return
	}
	if strings.TrimSpace(profile.Name) == "" {
		writeError(w, http.StatusBadRequest, "missing_name", errors.New("missing name"))
		return
	}

	stored, err := h.deps.SubmitProfile(r.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAnswers) {
			writeError(w, http.StatusUnprocessableEntity, "invalid_answers", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// HandleGetProfile handles GET /profiles/{id} requests.
func (h *ProfilesHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/profiles/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_id", errors.New("missing profile id"))
		return
	}

	profile, err := h.deps.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

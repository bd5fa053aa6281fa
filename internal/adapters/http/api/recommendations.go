package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/duet/internal/adapters/repository"
	"github.com/okian/duet/internal/domain/model"
)

// RecommendationsHandler serves ranked candidate lists.
type RecommendationsHandler struct {
	deps Dependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

type recommendationsResponse struct {
	UserID          string                 `json:"user_id"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Count           int                    `json:"count"`
}

// HandleGetRecommendations handles GET /recommendations/{userID}?limit=N.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "invalid_id", errors.New("missing user id"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	recs, err := h.deps.Recommendations(r.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{
		UserID:          userID,
		Recommendations: recs,
		Count:           len(recs),
	})
}

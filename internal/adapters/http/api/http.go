// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/duet/internal/app"
	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/questionnaire"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SubmitProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	Profile(ctx context.Context, id string) (model.Profile, error)
	Questions(ctx context.Context) map[string][]questionnaire.Question
	ValidateAnswers(ctx context.Context, answers model.AnswerSet) (map[string]string, []string)
	Recommendations(ctx context.Context, userID string, limit int) ([]model.Recommendation, error)
	Swipe(ctx context.Context, fromID, toID string, action model.Action) (model.SwipeResult, error)
	Stats(ctx context.Context) (service.Stats, error)
	Healthy(ctx context.Context) error
}

// Server wires HTTP routes for the matching API.
type Server struct {
	questionnaireHandler  *QuestionnaireHandler
	profilesHandler       *ProfilesHandler
	recommendationHandler *RecommendationsHandler
	swipesHandler         *SwipesHandler
	statsHandler          *StatsHandler
	healthHandler         *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		questionnaireHandler:  NewQuestionnaireHandler(deps),
		profilesHandler:       NewProfilesHandler(deps),
		recommendationHandler: NewRecommendationsHandler(deps),
		swipesHandler:         NewSwipesHandler(deps),
		statsHandler:          NewStatsHandler(deps),
		healthHandler:         NewHealthHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/questionnaire", MetricsMiddleware(s.questionnaireHandler.HandleGetQuestionnaire, "questionnaire"))
	mux.HandleFunc("/answers/validate", MetricsMiddleware(s.questionnaireHandler.HandleValidateAnswers, "answers_validate"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandlePostProfile, "profiles"))
	mux.HandleFunc("/profiles/", MetricsMiddleware(s.profilesHandler.HandleGetProfile, "profiles_get"))
	mux.HandleFunc("/recommendations/", MetricsMiddleware(s.recommendationHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/swipes", MetricsMiddleware(s.swipesHandler.HandlePostSwipe, "swipes"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/microlearn/sessionrank/internal/adapters/catalog"
	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/internal/domain/validate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// RankSessions scores one candidate group and returns it sorted.
	RankSessions(ctx context.Context, req model.RankingRequest) (model.RankingResponse, error)

	// ScoreStudent and ScoreTeacher run the validation scorers.
	ScoreStudent(ctx context.Context, f model.StudentFeatures) (float64, error)
	ScoreTeacher(ctx context.Context, f model.TeacherFeatures) (validate.TeacherScores, error)

	// Recommend surfaces catalog lectures for a free-text query.
	Recommend(ctx context.Context, query string, topK int, engine string) ([]catalog.Recommendation, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	rankHandler      *RankHandler
	validateHandler  *ValidateHandler
	recommendHandler *RecommendHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		rankHandler:      NewRankHandler(deps),
		validateHandler:  NewValidateHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/rank", RequestIDMiddleware(MetricsMiddleware(s.rankHandler.HandlePostRank, "rank")))
	mux.HandleFunc("/validate/student", RequestIDMiddleware(MetricsMiddleware(s.validateHandler.HandleStudent, "validate_student")))
	mux.HandleFunc("/validate/teacher", RequestIDMiddleware(MetricsMiddleware(s.validateHandler.HandleTeacher, "validate_teacher")))
	mux.HandleFunc("/recommend", RequestIDMiddleware(MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend")))
}

// rankRequest mirrors the wire schema for POST /rank.
type rankRequest struct {
	Query          string            `json:"query"`
	QueryEmbedding []float32         `json:"query_embedding,omitempty"`
	User           model.UserProfile `json:"user"`
	Sessions       []model.Session   `json:"sessions"`
}

func (r rankRequest) validate() error {
	if len(r.Sessions) == 0 {
		return errors.New("missing sessions")
	}
	for i, sess := range r.Sessions {
		if strings.TrimSpace(sess.SessionID) == "" {
			return errors.New("missing session_id")
		}
		if !validFloat(sess.PricePerMin) || !validFloat(sess.SemanticMax) ||
			!validFloat(sess.SemanticMean) || !validFloat(sess.SemanticHits) {
			return errors.New("non-finite numeric feature in session " + r.Sessions[i].SessionID)
		}
	}
	return nil
}

func (r rankRequest) toModel() model.RankingRequest {
	return model.RankingRequest{
		Query:          r.Query,
		QueryEmbedding: r.QueryEmbedding,
		User:           r.User,
		Sessions:       r.Sessions,
	}
}

// studentRequest mirrors the wire schema for POST /validate/student.
type studentRequest struct {
	Features *model.StudentFeatures `json:"student_features"`
}

func (r studentRequest) validate() error {
	if r.Features == nil {
		return errors.New("missing student_features")
	}
	return nil
}

type studentResponse struct {
	Score float64 `json:"student_credibility_score"`
}

// teacherRequest mirrors the wire schema for POST /validate/teacher.
type teacherRequest struct {
	Features *model.TeacherFeatures `json:"teacher_features"`
}

func (r teacherRequest) validate() error {
	if r.Features == nil {
		return errors.New("missing teacher_features")
	}
	return nil
}

type teacherResponse struct {
	Quality      float64 `json:"teacher_quality_score"`
	PricingTrust float64 `json:"teacher_pricing_trust_score"`
}

type recommendResponse struct {
	Query           string                   `json:"query"`
	Recommendations []catalog.Recommendation `json:"recommendations"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func validFloat(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
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

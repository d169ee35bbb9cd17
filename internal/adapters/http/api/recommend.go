// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/microlearn/sessionrank/internal/adapters/catalog"
	service "github.com/microlearn/sessionrank/internal/app"
)

// RecommendDependencies defines the interface for lecture recommendation.
type RecommendDependencies interface {
	Recommend(ctx context.Context, query string, topK int, engine string) ([]catalog.Recommendation, error)
}

// RecommendHandler handles lecture recommendation requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleRecommend handles GET /recommend?q=...&top_k=...&engine=... requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", NewKind(op, ErrBadRequest))
		return
	}

	topK := 0
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, errors.New("top_k must be a positive integer")))
			return
		}
		topK = n
	}
	engine := r.URL.Query().Get("engine")

	recs, err := h.deps.Recommend(r.Context(), query, topK, engine)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_input", err)
		case errors.Is(err, service.ErrNoCatalog), errors.Is(err, service.ErrRecommenderDisabled):
			writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Query: query, Recommendations: recs})
}

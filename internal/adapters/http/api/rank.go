// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/internal/domain/ranker"
)

// RankDependencies defines the interface for ranking operations.
type RankDependencies interface {
	RankSessions(ctx context.Context, req model.RankingRequest) (model.RankingResponse, error)
}

// RankHandler handles session ranking requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandlePostRank handles POST /rank requests.
func (h *RankHandler) HandlePostRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_rank"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, err))
		return
	}

	resp, err := h.deps.RankSessions(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, ranker.ErrUnknownBackend) || errors.Is(err, ranker.ErrMissingEmbedding) {
			writeError(w, http.StatusBadRequest, "invalid_input", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

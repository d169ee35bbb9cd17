// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/internal/domain/validate"
)

// ValidateDependencies defines the interface for validation scoring.
type ValidateDependencies interface {
	ScoreStudent(ctx context.Context, f model.StudentFeatures) (float64, error)
	ScoreTeacher(ctx context.Context, f model.TeacherFeatures) (validate.TeacherScores, error)
}

// ValidateHandler handles student and teacher validation requests.
type ValidateHandler struct {
	deps ValidateDependencies
}

// NewValidateHandler creates a new validation handler.
func NewValidateHandler(deps ValidateDependencies) *ValidateHandler {
	return &ValidateHandler{deps: deps}
}

// HandleStudent handles POST /validate/student requests.
func (h *ValidateHandler) HandleStudent(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_student"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, err))
		return
	}

	score, err := h.deps.ScoreStudent(r.Context(), *req.Features)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, studentResponse{Score: score})
}

// HandleTeacher handles POST /validate/teacher requests.
func (h *ValidateHandler) HandleTeacher(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_teacher"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req teacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, err))
		return
	}

	scores, err := h.deps.ScoreTeacher(r.Context(), *req.Features)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, teacherResponse{
		Quality:      scores.Quality,
		PricingTrust: scores.PricingTrust,
	})
}

// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/service"
)

// maxBodyBytes bounds request bodies; a full corpus import fits comfortably.
const maxBodyBytes = 16 << 20

var validate = validator.New()

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	exams  *service.ExamService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(exams *service.ExamService, logger *slog.Logger) *Handler {
	return &Handler{
		exams:  exams,
		logger: logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
// On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeBody(w, r, v, true)
}

// decodeLenientJSON is decodeJSON without the unknown-field check. Answer
// submissions use it so one odd entry cannot sink the whole attempt.
func decodeLenientJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeBody(w, r, v, false)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, strict bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// decodeAndValidate decodes the body and runs the struct's validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP responses. Returns true if
// an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, mocktest.ErrInvalidCount):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTestNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrAnalysisNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, attempt.ErrAlreadyFinalized):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

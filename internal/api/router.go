// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Corpus
	mux.HandleFunc("POST /questions/import", h.importQuestions)
	mux.HandleFunc("GET /questions/count", h.countQuestions)
	mux.HandleFunc("GET /trends", h.getTrends)

	// Mock tests
	mux.HandleFunc("POST /tests", h.generateTest)
	mux.HandleFunc("GET /tests/{testID}", h.getTest)
	mux.HandleFunc("POST /tests/{testID}/attempts", h.startAttempt)

	// Attempts
	mux.HandleFunc("GET /attempts/{attemptID}", h.getAttempt)
	mux.HandleFunc("PUT /attempts/{attemptID}/responses", h.saveResponses)
	mux.HandleFunc("POST /attempts/{attemptID}/submit", h.submitAttempt)
	mux.HandleFunc("GET /attempts/{attemptID}/analysis", h.getAnalysis)
	mux.HandleFunc("GET /attempts/{attemptID}/report", h.getReport)
}

// health reports liveness.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

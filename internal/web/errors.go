package web

// errors.go provides unified error response handling for the web layer.
// Technical errors are logged server-side with the request ID for
// correlation; clients receive a sanitized JSON message.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lsemperez/gymtrack/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError logs the technical error with request context and writes a
// sanitized message to the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int, userMessage string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
	)
	writeError(w, statusCode, userMessage)
}

// writeError writes a JSON error response with the given client-facing
// message.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON encodes v as JSON with the given status. Encoding errors are
// logged since headers are already sent.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

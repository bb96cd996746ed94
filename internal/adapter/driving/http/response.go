package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adalabs/parent-dashboard/internal/application"
	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Time          string `json:"time"`
}

// MeResponse is the JSON representation of the signed-in account.
type MeResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	AvatarURL        string `json:"avatar_url"`
	SessionExpiresAt string `json:"session_expires_at"`
}

// toHealthResponse converts an application health status to its JSON representation.
func toHealthResponse(check application.HealthStatus) HealthResponse {
	return HealthResponse{
		Status:        check.Status,
		Database:      check.Database,
		UptimeSeconds: int64(check.Uptime.Seconds()),
		Time:          time.Now().UTC().Format(time.RFC3339),
	}
}

// toMeResponse converts a domain Session to the /me JSON representation.
// Auth service tokens stay server side and are never serialized.
func toMeResponse(session model.Session) MeResponse {
	return MeResponse{
		ID:               session.Account.ID,
		Email:            session.Account.Email,
		Name:             session.Account.Name,
		AvatarURL:        session.Account.AvatarURL,
		SessionExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

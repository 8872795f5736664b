package http

import (
	"encoding/json"
	"net/http"

	"github.com/nikolayk812/streamstick/internal/notify"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error        string               `json:"error"`
	Code         string               `json:"code,omitempty"`
	Details      string               `json:"details,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondNotifiedError attaches the notification the shopper should see.
func respondNotifiedError(w http.ResponseWriter, status int, code, message string, n notify.Notification) {
	respondJSON(w, status, ErrorResponse{
		Error:        message,
		Code:         code,
		Notification: &n,
	})
}

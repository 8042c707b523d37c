package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yurtapp/account-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper. ErrorStatus carries the
// machine-readable error kind so clients can branch without parsing text.
type MessageEnvelope struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorStatus string `json:"error_status,omitempty"`
}

// writeMessage writes a success envelope with a human-readable message.
func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: msg})
}

// AuthEnvelope wraps responses that establish a session.
type AuthEnvelope struct {
	Tokens *domain.TokenPair `json:"tokens,omitempty"`
	User   *domain.User      `json:"user,omitempty"`
}

// CapabilityEnvelope carries the single-use password reset token.
type CapabilityEnvelope struct {
	Token string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

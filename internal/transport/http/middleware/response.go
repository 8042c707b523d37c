package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits the same error envelope the handlers use, so clients
// see one wire shape whether a request is rejected here or deeper in.
func writeJSONError(w http.ResponseWriter, status int, msg, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      false,
		"error":        msg,
		"error_status": kind,
	})
}

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeMessage answers with the API's {"message": ...} error body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		slog.Error("middleware: encode response", "error", err)
	}
}

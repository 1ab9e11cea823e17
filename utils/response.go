package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError writes the {message} error envelope.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"message": msg})
}

// RespondWithErrorDetail writes the {message, error} envelope used when an
// unexpected store or gateway failure is forwarded to the caller.
func RespondWithErrorDetail(w http.ResponseWriter, code int, msg string, err error) {
	payload := map[string]any{"message": msg}
	if err != nil {
		payload["error"] = err.Error()
	}
	RespondWithJSON(w, code, payload)
}

type M map[string]interface{}

package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope the API exposes:
// {"error": true, "message": "..."}.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: true, Message: message})
}

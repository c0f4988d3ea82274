package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
	HTML string
	CSV  string
	PNG  string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
	HTML: "text/html; charset=utf-8",
	CSV:  "text/csv; charset=utf-8",
	PNG:  "image/png",
}

// ErrorEnvelope is the single error body shape returned by the workouts API.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

func WriteResponseBytesOK(w http.ResponseWriter, contentType string, message []byte) {
	WriteResponseBytes(w, contentType, message, http.StatusOK)
}

// WriteJSON marshals v and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, v any, statusCode int) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, body, statusCode)
}

// WriteJSONError writes msg wrapped in an ErrorEnvelope.
func WriteJSONError(w http.ResponseWriter, msg string, statusCode int) {
	body, err := json.Marshal(ErrorEnvelope{Error: msg})
	if err != nil {
		// a struct with a single string field always marshals
		body = []byte(`{"error":"internal server error"}`)
	}
	WriteResponseBytes(w, ContentType.JSON, body, statusCode)
}

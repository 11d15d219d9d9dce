package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
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

// WriteJSON marshals the payload and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, payload any, statusCode int) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal response payload: %s", err)
		http.Error(w, `{"error":"internal error","code":"INTERNAL_ERROR","status":500}`, http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, payloadJson, statusCode)
}

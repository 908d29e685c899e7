package utils

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a machine-readable error body. Reason is a stable code the
// client switches on; message is human-readable.
func Error(w http.ResponseWriter, status int, reason, message string) {
	JSON(w, status, map[string]string{
		"error":  message,
		"reason": reason,
	})
}

// FieldErrors writes a validation failure with per-field messages
func FieldErrors(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"reason": "validation_error",
		"fields": fields,
	})
}

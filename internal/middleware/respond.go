package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's JSON error envelope. It mirrors the handler
// package's ErrorResponse so clients see one error shape everywhere.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}

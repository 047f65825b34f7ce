package proxy

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSONError writes a JSON error response.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteErrorBadRequest writes a 400 Bad Request JSON error.
func WriteErrorBadRequest(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusBadRequest, message)
}

// WriteErrorUnauthorized writes a 401 Unauthorized JSON error.
func WriteErrorUnauthorized(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusUnauthorized, message)
}

// WriteErrorNotFound writes a 404 Not Found JSON error.
func WriteErrorNotFound(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusNotFound, message)
}

// WriteErrorMethodNotAllowed writes a 405 Method Not Allowed JSON error.
func WriteErrorMethodNotAllowed(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusMethodNotAllowed, message)
}

// WriteErrorTooLarge writes a 413 Request Entity Too Large JSON error.
func WriteErrorTooLarge(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusRequestEntityTooLarge, message)
}

// WriteErrorRateLimit writes a 429 Too Many Requests JSON error.
func WriteErrorRateLimit(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusTooManyRequests, message)
}

// WriteErrorInternal writes a 500 Internal Server Error JSON error.
func WriteErrorInternal(w http.ResponseWriter, message string) {
	WriteJSONError(w, http.StatusInternalServerError, message)
}

package response

import (
	"encoding/json"
	"net/http"
)

// Status values used by the dashboard routes
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusBody is the {status, message} envelope of refresh-style routes
type StatusBody struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// OK sends a 200 OK response with JSON body
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Error sends an {"error": message} response
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, map[string]string{"error": message})
}

// NotFound sends a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError sends a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// ServiceUnavailable sends a 503 Service Unavailable error
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, message)
}

// Success sends {"status":"success"} with an optional message
func Success(w http.ResponseWriter, message string) {
	OK(w, StatusBody{Status: StatusSuccess, Message: message})
}

// Failure sends {"status":"error","message":...} with the given code
func Failure(w http.ResponseWriter, code int, message string) {
	JSON(w, code, StatusBody{Status: StatusError, Message: message})
}

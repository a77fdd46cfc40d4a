package errors

import (
	"encoding/json"
	"net/http"
)

// Default messages per status, matching what existing clients display.
const (
	MessageBadRequest    = "Bad request"
	MessageNotFound      = "Not Found"
	MessageUnprocessable = "Unprocessable Entity"
)

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewErrorResponse builds the envelope for status without writing it.
func NewErrorResponse(status int, code, message string) ErrorResponse {
	if message == "" {
		message = defaultMessage(status)
	}
	return ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
		Code:    code,
	}
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(NewErrorResponse(status, code, message))
}

// RespondBadRequest writes a 400 for missing or malformed fields.
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound writes a 404 for absent entities.
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondUnprocessable writes a 422 for well-formed requests that cannot be processed.
func RespondUnprocessable(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusUnprocessableEntity, code, message)
}

// RespondMethodNotAllowed writes a 405.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, ErrCodeInternalError, message)
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MessageBadRequest
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusUnprocessableEntity:
		return MessageUnprocessable
	default:
		return http.StatusText(status)
	}
}

package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthenticated = "unauthenticated"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
)

// Envelope is the common part of every response body. Payload-carrying
// responses embed it so its fields sit next to the payload.
// swagger:model Envelope
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK returns a successful Envelope with message.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// ErrorResponse is the body of every error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Envelope
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes a payload-free success envelope.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, OK(message))
}

// WriteJSONError writes an ErrorResponse with the given status, code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Envelope:   Envelope{Success: false, Message: message},
		Code:       code,
		StatusCode: statusCode,
	})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/logging"
	"github.com/smarterworkco/GPT-UI/internal/telemetry"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-validation error
type ErrorResponse struct {
	Message string `json:"message"`
}

// FieldError names one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the body of a 400 produced by request validation
type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Message: message})
}

// NotFound writes a 404 with no body
func NotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// NoContent writes a 204
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ValidationFailed writes a 400 listing the rejected fields
func ValidationFailed(w http.ResponseWriter, errs []FieldError) {
	if errs == nil {
		errs = []FieldError{}
	}
	JSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Message: "Validation error",
		Errors:  errs,
	})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeAlreadyExists:
		return http.StatusConflict
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type.
// Internal errors are logged and reported but never echoed to the client.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := DomainErrorToHTTP(err)

	switch {
	case status == http.StatusNotFound:
		NotFound(w)
	case status == http.StatusBadRequest:
		var de *domain.DomainError
		errors.As(err, &de)
		ValidationFailed(w, []FieldError{{Message: de.Message}})
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		logging.FromContext(r.Context()).Error("request failed", zap.Error(err))
		telemetry.CaptureError(r.Context(), err)
		Error(w, status, "Internal server error")
	default:
		var de *domain.DomainError
		errors.As(err, &de)
		if status == http.StatusServiceUnavailable {
			logging.FromContext(r.Context()).Warn("collaborator unavailable", zap.Error(err))
		}
		Error(w, status, de.Message)
	}
}

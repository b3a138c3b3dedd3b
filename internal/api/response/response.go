// Package response defines the JSON envelope shared by all API handlers.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/quantive/confluence/internal/core"
)

// Meta contains response metadata.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse is the standard success response format.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, data any) {
	resp := SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Error writes an error response. Structured errors surface their code
// and message; anything else is reported as an internal error.
func Error(w http.ResponseWriter, status int, err error) {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: detail})
}

// StatusFor maps a structured error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrSymbolNotFound), errors.Is(err, core.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, core.ErrCollectorTimeout), errors.Is(err, core.ErrLLMTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrCollectorFailed), errors.Is(err, core.ErrLLMFailed):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrConfigInvalid), errors.Is(err, core.ErrConfigMissing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

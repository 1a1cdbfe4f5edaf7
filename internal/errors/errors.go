package errors

import (
	"net/http"

	"lumenportal/internal/service"
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StatusForKind maps a service result kind to an HTTP status code.
func StatusForKind(kind service.Kind) int {
	switch kind {
	case service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeForKind maps a service result kind to a machine-readable error code.
func CodeForKind(kind service.Kind) string {
	switch kind {
	case service.KindInvalidInput:
		return "INVALID_INPUT"
	case service.KindUnauthorized:
		return "UNAUTHORIZED"
	case service.KindForbidden:
		return "FORBIDDEN"
	case service.KindNotFound:
		return "NOT_FOUND"
	case service.KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// FromResult converts a failed service result to a response body.
func FromResult(res service.Result) ErrorResponse {
	return ErrorResponse{Error: res.Message, Code: CodeForKind(res.Kind)}
}

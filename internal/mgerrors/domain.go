package mgerrors

import (
	"fmt"
	"net/http"
)

// Domain-specific error codes for the map generation service.

// Generation errors
var (
	ErrInvalidParameter  = &AppError{Code: "INVALID_PARAMETER", Message: "Invalid generation parameter", HTTPStatus: http.StatusBadRequest}
	ErrResourceExhausted = &AppError{Code: "RESOURCE_EXHAUSTED", Message: "Requested grid exceeds the hydrology cell cap", HTTPStatus: http.StatusBadRequest}
	ErrGenerationFailed  = &AppError{Code: "GENERATION_FAILED", Message: "Map generation failed", HTTPStatus: http.StatusInternalServerError}
)

// Cache / job errors
var (
	ErrMapNotCached  = &AppError{Code: "MAP_NOT_CACHED", Message: "No base map has been generated yet", HTTPStatus: http.StatusConflict}
	ErrJobNotFound   = &AppError{Code: "JOB_NOT_FOUND", Message: "Generation job not found", HTTPStatus: http.StatusNotFound}
	ErrLayerUnknown  = &AppError{Code: "LAYER_UNKNOWN", Message: "Unknown layer name", HTTPStatus: http.StatusBadRequest}
)

// Auth errors
var (
	ErrAuthTokenMissing = &AppError{Code: "AUTH_TOKEN_MISSING", Message: "Bearer token required", HTTPStatus: http.StatusUnauthorized}
	ErrAuthTokenInvalid = &AppError{Code: "AUTH_TOKEN_INVALID", Message: "Bearer token is invalid or expired", HTTPStatus: http.StatusUnauthorized}
)

// NewInvalidInput returns an InvalidInput error with a custom message.
func NewInvalidInput(format string, args ...any) error {
	return &AppError{
		Code:       ErrInvalidInput.Code,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: ErrInvalidInput.HTTPStatus,
	}
}

// NewInvalidParameter returns an INVALID_PARAMETER error with a custom message.
func NewInvalidParameter(format string, args ...any) error {
	return &AppError{
		Code:       ErrInvalidParameter.Code,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: ErrInvalidParameter.HTTPStatus,
	}
}

// NewNotFound returns a NotFound error with a custom message.
func NewNotFound(format string, args ...any) error {
	return &AppError{
		Code:       ErrNotFound.Code,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: ErrNotFound.HTTPStatus,
	}
}

// NewInternalError returns an AppError for internal errors.
func NewInternalError(format string, args ...any) error {
	return &AppError{
		Code:       ErrInternalServer.Code,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: ErrInternalServer.HTTPStatus,
	}
}

package types

import (
	"errors"
	"net/http"

	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

// FromAppError converts err into the wire error. Messages of uncoded and
// internal errors are not exposed.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if !errors.As(err, &e) {
		return &APIError{Code: string(appErr.CodeInternal), Message: http.StatusText(http.StatusInternalServerError)}
	}
	switch e.Code {
	case appErr.CodeInternal, appErr.CodeUnknown:
		return &APIError{Code: string(appErr.CodeInternal), Message: http.StatusText(http.StatusInternalServerError)}
	}
	return &APIError{Code: string(e.Code), Message: e.Message}
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

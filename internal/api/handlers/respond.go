package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pkgindex/legacy-api/internal/api/middleware"
	"github.com/pkgindex/legacy-api/internal/api/types"
	"github.com/pkgindex/legacy-api/internal/api/validators"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
	"github.com/pkgindex/legacy-api/pkg/logger"
)

// LastSerialHeader carries the serial of the project a response describes.
const LastSerialHeader = "X-PyPI-Last-Serial"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := types.HTTPStatus(err)
	id := middleware.GetRequestID(r.Context())
	if status >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, types.APIResponse{
		Success: false,
		Error:   types.FromAppError(err),
		Meta:    &types.Meta{RequestID: id},
	})
}

func setLastSerial(w http.ResponseWriter, serial int64) {
	w.Header().Set(LastSerialHeader, strconv.FormatInt(serial, 10))
}

// queryInt64 returns nil when key is absent or empty.
func queryInt64(q url.Values, key string) (*int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, appErr.Invalid("%s must be an integer, got %q", key, raw)
	}
	return &v, nil
}

// pathParam returns the decoded value of a route parameter. chi matches on
// the escaped path when the client sent one, so params may still be
// percent-encoded.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", appErr.Invalid("%s is not a valid path segment: %q", key, raw)
	}
	return v, nil
}

func validateQuery(v any) error {
	if err := validators.New().Struct(v); err != nil {
		return appErr.Invalid("%s", validators.Message(err))
	}
	return nil
}

// NotFound answers unknown routes in the error envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, appErr.NotFound("no route for %s", r.URL.Path))
}

// MethodNotAllowed answers every non-read method; the API is read-only.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: string(appErr.CodeInvalid), Message: "method " + r.Method + " not allowed"},
		Meta:    &types.Meta{RequestID: middleware.GetRequestID(r.Context())},
	})
}

package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/pkgindex/legacy-api/internal/api/types"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
	"github.com/pkgindex/legacy-api/pkg/logger"
)

// Recovery logs panics and answers 500 in the error envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			id := GetRequestID(r.Context())
			logger.From(r.Context()).Error("panic recovered",
				zap.String("path", r.URL.Path),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(types.APIResponse{
				Success: false,
				Error:   &types.APIError{Code: string(appErr.CodeInternal), Message: http.StatusText(http.StatusInternalServerError)},
				Meta:    &types.Meta{RequestID: id},
			})
		}()
		next.ServeHTTP(w, r)
	})
}

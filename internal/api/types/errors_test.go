package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{appErr.NotFound("x"), http.StatusNotFound},
		{fmt.Errorf("lookup: %w", appErr.NotFound("x")), http.StatusNotFound},
		{appErr.Invalid("x"), http.StatusBadRequest},
		{appErr.Unavailable(errors.New("conn refused"), "x"), http.StatusServiceUnavailable},
		{appErr.New(appErr.CodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestFromAppErrorHidesInternalDetail(t *testing.T) {
	assert.Nil(t, FromAppError(nil))

	got := FromAppError(appErr.Unavailable(errors.New("dial tcp 10.0.0.1:5432"), "store unavailable"))
	assert.Equal(t, &APIError{Code: "unavailable", Message: "store unavailable"}, got)

	got = FromAppError(errors.New("dial tcp 10.0.0.1:5432"))
	assert.Equal(t, "internal", got.Code)
	assert.NotContains(t, got.Message, "10.0.0.1")

	got = FromAppError(appErr.Wrap(errors.New("bad json"), appErr.CodeInternal, "decode classifiers failed"))
	assert.Equal(t, "internal", got.Code)
	assert.Equal(t, "Internal Server Error", got.Message)
}

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgindex/legacy-api/internal/urls"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

func TestQueryInt64(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    *int64
		wantErr bool
	}{
		{name: "absent", query: ""},
		{name: "empty", query: "serial="},
		{name: "value", query: "serial=42", want: ptr(int64(42))},
		{name: "negative parses", query: "serial=-3", want: ptr(int64(-3))},
		{name: "not a number", query: "serial=abc", wantErr: true},
		{name: "float", query: "serial=1.5", wantErr: true},
		{name: "first wins", query: "serial=7&serial=8", want: ptr(int64(7))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			got, err := queryInt64(v, "serial")
			if tc.wantErr {
				assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWriteErrorMapsCodes(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{appErr.NotFound("project %q not found", "x"), http.StatusNotFound, `{"success":false,"error":{"code":"not_found","message":"project \"x\" not found"},"meta":{}}`},
		{appErr.Invalid("page must be >= 1"), http.StatusBadRequest, `{"success":false,"error":{"code":"invalid","message":"page must be >= 1"},"meta":{}}`},
		{appErr.Unavailable(sql.ErrConnDone, "list projects failed"), http.StatusServiceUnavailable, `{"success":false,"error":{"code":"unavailable","message":"list projects failed"},"meta":{}}`},
		{errors.New("secret detail"), http.StatusInternalServerError, `{"success":false,"error":{"code":"internal","message":"Internal Server Error"},"meta":{}}`},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		writeError(rr, httptest.NewRequest(http.MethodGet, "/x", nil), tc.err)
		assert.Equal(t, tc.status, rr.Code)
		assert.JSONEq(t, tc.body, rr.Body.String())
	}
}

func TestPageLinkPreservesOtherParams(t *testing.T) {
	b, err := urls.New("https://index.example.org", "https://files.example.org")
	require.NoError(t, err)
	h := NewProjectsHandler(nil, nil, b)

	assert.Nil(t, h.pageLink("serial_since=3", nil))

	tests := []struct {
		raw  string
		page int
		want string
	}{
		{"", 2, "https://index.example.org/api/v1/projects/?page=2"},
		{"page=1", 2, "https://index.example.org/api/v1/projects/?page=2"},
		{"serial_since=3&page=2&x=a%20b", 3, "https://index.example.org/api/v1/projects/?page=3&serial_since=3&x=a%20b"},
		{"z=1&a=2&page=9&p%61ge=4", 1, "https://index.example.org/api/v1/projects/?page=1&z=1&a=2"},
		{"flag&page=2", 1, "https://index.example.org/api/v1/projects/?page=1&flag"},
	}
	for _, tc := range tests {
		got := h.pageLink(tc.raw, &tc.page)
		require.NotNil(t, got, tc.raw)
		assert.Equal(t, tc.want, *got, tc.raw)
	}
}

func ptr[T any](v T) *T { return &v }

func TestPathParamDecodes(t *testing.T) {
	withParam := func(key, raw string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, raw)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	got, err := pathParam(withParam("version", "1.0%2Blocal"), "version")
	require.NoError(t, err)
	assert.Equal(t, "1.0+local", got)

	got, err = pathParam(withParam("name", "zope.interface"), "name")
	require.NoError(t, err)
	assert.Equal(t, "zope.interface", got)

	_, err = pathParam(withParam("name", "bad%zz"), "name")
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

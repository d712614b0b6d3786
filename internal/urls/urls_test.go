package urls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := New("https://index.example.org/", "https://files.example.org/packages")
	require.NoError(t, err)
	return b
}

func TestRoute(t *testing.T) {
	b := newBuilder(t)

	assert.Equal(t, "https://index.example.org/api/v1/projects/", b.Route(Projects, nil))
	assert.Equal(t, "https://index.example.org/api/v1/projects/Foo-Bar/", b.Project(ProjectDetail, "Foo-Bar"))
	assert.Equal(t, "https://index.example.org/project/foo/", b.Project(ProjectPage, "foo"))
	assert.Equal(t, "https://index.example.org/project/foo/1.0/", b.Release(ReleasePage, "foo", "1.0"))
	assert.Equal(t, "https://files.example.org/packages/ab/cd/foo-1.0.tar.gz", b.File("/ab/cd/foo-1.0.tar.gz"))
}

func TestRouteEscapesParams(t *testing.T) {
	b := newBuilder(t)
	assert.Equal(t, "https://index.example.org/project/a%2Fb/", b.Project(ProjectPage, "a/b"))
}

func TestRoutePanicsOnProgrammingErrors(t *testing.T) {
	b := newBuilder(t)
	assert.Panics(t, func() { b.Route("nope", nil) })
	assert.Panics(t, func() { b.Route(ReleasePage, map[string]string{"name": "foo"}) })
}

func TestNewRejectsRelative(t *testing.T) {
	_, err := New("/relative", "https://files.example.org")
	assert.Error(t, err)
}

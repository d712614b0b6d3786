// Package urls builds the absolute links rendered into API responses.
package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Route names understood by Builder.Route.
const (
	Projects      = "projects"
	ProjectDetail = "projects.detail"
	ProjectPage   = "project.page"
	ReleasePage   = "release.page"
	Files         = "files"
)

var routes = map[string]string{
	Projects:      "/api/v1/projects/",
	ProjectDetail: "/api/v1/projects/{name}/",
	ProjectPage:   "/project/{name}/",
	ReleasePage:   "/project/{name}/{version}/",
}

// Builder turns route names and parameters into absolute URLs.
type Builder struct {
	public string
	files  string
}

// New returns a Builder rooted at publicURL, with distribution files served
// under filesURL.
func New(publicURL, filesURL string) (*Builder, error) {
	for _, raw := range []string{publicURL, filesURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse base url %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("base url %q must be absolute", raw)
		}
	}
	return &Builder{
		public: strings.TrimRight(publicURL, "/"),
		files:  strings.TrimRight(filesURL, "/"),
	}, nil
}

// Route renders the named route. Params are path-escaped. An unknown route
// or a missing parameter is a programming error and panics.
func (b *Builder) Route(name string, params map[string]string) string {
	if name == Files {
		path, ok := params["path"]
		if !ok {
			panic("urls: route files needs a path")
		}
		return b.files + "/" + strings.TrimLeft(path, "/")
	}
	tmpl, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("urls: unknown route %q", name))
	}
	var sb strings.Builder
	sb.WriteString(b.public)
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			sb.WriteString(tmpl)
			break
		}
		j := strings.IndexByte(tmpl[i:], '}')
		key := tmpl[i+1 : i+j]
		v, ok := params[key]
		if !ok {
			panic(fmt.Sprintf("urls: route %q needs %q", name, key))
		}
		sb.WriteString(tmpl[:i])
		sb.WriteString(url.PathEscape(v))
		tmpl = tmpl[i+j+1:]
	}
	return sb.String()
}

// Project is shorthand for a route that only needs the project name.
func (b *Builder) Project(route, name string) string {
	return b.Route(route, map[string]string{"name": name})
}

// Release is shorthand for a route keyed by project name and version.
func (b *Builder) Release(route, name, version string) string {
	return b.Route(route, map[string]string{"name": name, "version": version})
}

// File returns the download URL of a stored distribution path.
func (b *Builder) File(path string) string {
	return b.Route(Files, map[string]string{"path": path})
}

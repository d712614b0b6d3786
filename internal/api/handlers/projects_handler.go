package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkgindex/legacy-api/internal/api/types"
	"github.com/pkgindex/legacy-api/internal/services"
	"github.com/pkgindex/legacy-api/internal/urls"
)

type ProjectsHandler struct {
	lister services.ProjectLister
	roles  services.RoleLister
	urls   *urls.Builder
}

func NewProjectsHandler(lister services.ProjectLister, roles services.RoleLister, builder *urls.Builder) *ProjectsHandler {
	return &ProjectsHandler{lister: lister, roles: roles, urls: builder}
}

// List serves one page of projects ordered by normalized name.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListProjectsQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	in := services.ListProjectsInput{SerialSince: q.SerialSince, Serial: q.Serial}
	if q.Page != nil {
		in.Page = int(*q.Page)
	}
	page, err := h.lister.List(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ProjectListResponse{
		Data: page.Projects,
		Links: types.Links{
			NextPage:     h.pageLink(r.URL.RawQuery, page.NextPage),
			PreviousPage: h.pageLink(r.URL.RawQuery, page.PreviousPage),
		},
	})
}

// Get serves the listing record of a single project.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.lister.Get(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setLastSerial(w, p.Serial)
	writeJSON(w, http.StatusOK, p)
}

// Roles lists the collaborators of a project.
func (h *ProjectsHandler) Roles(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	roles, err := h.roles.ProjectRoles(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func parseListProjectsQuery(v url.Values) (types.ListProjectsQuery, error) {
	var q types.ListProjectsQuery
	var err error
	if q.SerialSince, err = queryInt64(v, "serial_since"); err != nil {
		return q, err
	}
	if q.Serial, err = queryInt64(v, "serial"); err != nil {
		return q, err
	}
	if q.Page, err = queryInt64(v, "page"); err != nil {
		return q, err
	}
	return q, validateQuery(q)
}

// pageLink points at page n of the listing. Every other query parameter is
// carried over as sent, in request order.
func (h *ProjectsHandler) pageLink(rawQuery string, n *int) *string {
	if n == nil {
		return nil
	}
	parts := []string{"page=" + strconv.Itoa(*n)}
	for _, seg := range strings.Split(rawQuery, "&") {
		if seg == "" {
			continue
		}
		key, _, _ := strings.Cut(seg, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if key == "page" {
			continue
		}
		parts = append(parts, seg)
	}
	link := h.urls.Route(urls.Projects, nil) + "?" + strings.Join(parts, "&")
	return &link
}

package handlers

import (
	"net/http"

	"github.com/pkgindex/legacy-api/internal/services"
)

type UsersHandler struct {
	roles services.RoleLister
}

func NewUsersHandler(roles services.RoleLister) *UsersHandler {
	return &UsersHandler{roles: roles}
}

// Projects lists the projects a user holds a role on.
func (h *UsersHandler) Projects(w http.ResponseWriter, r *http.Request) {
	username, err := pathParam(r, "username")
	if err != nil {
		writeError(w, r, err)
		return
	}
	held, err := h.roles.UserProjects(r.Context(), username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, held)
}

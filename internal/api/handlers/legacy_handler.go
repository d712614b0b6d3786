package handlers

import (
	"net/http"

	"github.com/pkgindex/legacy-api/internal/services"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

// LegacyHandler serves the per-project JSON documents older clients read.
type LegacyHandler struct {
	releases services.ReleaseAggregator
	serials  services.SerialTracker
}

func NewLegacyHandler(releases services.ReleaseAggregator, serials services.SerialTracker) *LegacyHandler {
	return &LegacyHandler{releases: releases, serials: serials}
}

func (h *LegacyHandler) Project(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := h.releases.Project(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setLastSerial(w, doc.LastSerial)
	writeJSON(w, http.StatusOK, doc)
}

// Release answers an unknown project or version with an empty object. When
// only the version is unknown the project's serial is still reported.
func (h *LegacyHandler) Release(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}
	version, err := pathParam(r, "version")
	if err != nil {
		writeError(w, r, err)
		return
	}

	doc, err := h.releases.Release(r.Context(), name, version)
	if appErr.IsCode(err, appErr.CodeNotFound) {
		serial, serr := h.serials.ProjectSerial(r.Context(), name)
		switch {
		case serr == nil:
			setLastSerial(w, serial)
		case !appErr.IsCode(serr, appErr.CodeNotFound):
			writeError(w, r, serr)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	setLastSerial(w, doc.LastSerial)
	writeJSON(w, http.StatusOK, doc)
}

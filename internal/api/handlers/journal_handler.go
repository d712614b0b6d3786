package handlers

import (
	"net/http"
	"time"

	"github.com/pkgindex/legacy-api/internal/api/types"
	"github.com/pkgindex/legacy-api/internal/services"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

type JournalHandler struct {
	journal services.JournalReader
}

func NewJournalHandler(journal services.JournalReader) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// List replays journal entries after a Unix timestamp (?since=) or after a
// serial (?serial=), oldest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	var q types.JournalQuery
	var err error
	if q.Since, err = queryInt64(v, "since"); err != nil {
		writeError(w, r, err)
		return
	}
	if q.Serial, err = queryInt64(v, "serial"); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateQuery(q); err != nil {
		writeError(w, r, err)
		return
	}

	var events []services.JournalEvent
	switch {
	case q.Since != nil && q.Serial != nil:
		err = appErr.Invalid("since and serial are mutually exclusive")
	case q.Since != nil:
		events, err = h.journal.Since(r.Context(), time.Unix(*q.Since, 0).UTC())
	case q.Serial != nil:
		events, err = h.journal.SinceSerial(r.Context(), *q.Serial)
	default:
		err = appErr.Invalid("one of since or serial is required")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *JournalHandler) Recent(w http.ResponseWriter, r *http.Request) {
	events, err := h.journal.Recent(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *JournalHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.journal.Latest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

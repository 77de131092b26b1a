package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/memo_coach/internal/ports"
)

type JournalHandler struct {
	journal ports.AttemptJournal
	log     *logger.ZapLogger
}

func NewJournalHandler(journal ports.AttemptJournal, log *logger.ZapLogger) *JournalHandler {
	return &JournalHandler{journal: journal, log: log}
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.List(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "journal list failed", Service: "journal", Error: err})
		http.Error(w, "failed to load journal", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []ports.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/memo_coach/internal/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindPermission:
		return http.StatusForbidden
	case domain.KindServiceCall, domain.KindSynthesis:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondWithError maps a domain error onto {"error": kind, "message": text}.
// Anything without a Kind is logged and hidden behind a generic message.
func respondWithError(w http.ResponseWriter, log *logger.ZapLogger, service string, err error) {
	kind := domain.KindOf(err)
	status := statusOf(kind)

	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) && kind != domain.KindServiceCall {
		msg = de.Msg
	}
	if kind == "" {
		kind = "internal"
		msg = "internal error"
	}

	if status >= http.StatusInternalServerError && log != nil {
		log.Log(logger.LogEntry{Level: "error", Message: "request failed", Service: service, Error: err})
	}
	writeJSON(w, status, errorBody{Error: string(kind), Message: msg})
}

// badRequest is for malformed transport input, before anything reaches the domain.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: string(domain.KindValidation), Message: msg})
}

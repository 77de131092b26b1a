package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/Vovarama1992/memo_coach/internal/ports"
)

type Handlers struct {
	Session  *SessionHandler
	Document *DocumentHandler
	WS       *WSHandler
	Auth     *AuthHandler
	Journal  *JournalHandler // nil без Postgres
}

func RegisterRoutes(r chi.Router, h Handlers, authSvc ports.AuthService, ratePerMin int) {
	if ratePerMin <= 0 {
		ratePerMin = 60
	}
	limit := httprate.LimitByIP(ratePerMin, time.Minute)

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- сессии ---
		pr.Post("/sessions", h.Session.Create)
		pr.Get("/sessions/{id}", h.Session.Get)
		pr.Post("/sessions/{id}/lesson", h.Session.StartLesson)
		pr.Post("/sessions/{id}/retry", h.Session.Retry)
		pr.Post("/sessions/{id}/new-lesson", h.Session.NewLesson)
		pr.Post("/sessions/{id}/microphone", h.Session.Microphone)
		pr.Delete("/sessions/{id}/report", h.Session.DismissReport)

		// --- AI ---
		pr.With(limit).Post("/sessions/{id}/attempts", h.Session.SubmitAttempt)
		pr.With(limit).Post("/sessions/{id}/report", h.Session.RequestReport)
		pr.With(limit).Get("/sessions/{id}/speech", h.Session.Speech)
		pr.With(limit).Post("/documents/extract", h.Document.Extract)

		// --- auth ---
		pr.Post("/auth/login", h.Auth.Login)
	})

	// websocket: без recover-обёртки, соединение hijack-ается
	r.Get("/sessions/{id}/events", h.WS.ServeWS)

	if h.Journal != nil {
		r.Group(func(pr chi.Router) {
			pr.Use(
				httputil.RecoverMiddleware,
				AuthMiddleware(authSvc),
			)
			pr.Get("/journal/{session_id}", h.Journal.List)
		})
	}
}

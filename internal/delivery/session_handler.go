package delivery

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/memo_coach/internal/domain"
	"github.com/Vovarama1992/memo_coach/internal/session"
)

type SessionHandler struct {
	sessions  *session.Service
	maxUpload int64
	log       *logger.ZapLogger
}

func NewSessionHandler(sessions *session.Service, maxUpload int64, log *logger.ZapLogger) *SessionHandler {
	if maxUpload <= 0 {
		maxUpload = 20 << 20
	}
	return &SessionHandler{sessions: sessions, maxUpload: maxUpload, log: log}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		respondWithError(w, h.log, "session", err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, sess, err)
}

func (h *SessionHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	sess, err := h.sessions.StartLesson(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content)
	h.respond(w, sess, err)
}

// SubmitAttempt takes a multipart upload with an "audio" file, or a typed
// answer as JSON {"text"} or a form field. A failed evaluation still answers
// 200 with the snapshot, which is back on practice with last_error set.
func (h *SessionHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	attempt, err := h.readAttempt(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: string(domain.KindValidation), Message: "upload too large"})
			return
		}
		badRequest(w, err.Error())
		return
	}

	sess, err := h.sessions.SubmitAttempt(r.Context(), chi.URLParam(r, "id"), attempt)
	if err != nil && sess != nil && domain.KindOf(err) == domain.KindServiceCall {
		writeJSON(w, http.StatusOK, sess.Snapshot())
		return
	}
	h.respond(w, sess, err)
}

func (h *SessionHandler) readAttempt(r *http.Request) (domain.Attempt, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch ct {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			return domain.Attempt{}, err
		}
		attempt := domain.Attempt{Text: r.FormValue("text")}

		file, header, err := r.FormFile("audio")
		if errors.Is(err, http.ErrMissingFile) {
			return attempt, nil
		}
		if err != nil {
			return domain.Attempt{}, err
		}
		defer file.Close()

		attempt.Audio, err = io.ReadAll(file)
		if err != nil {
			return domain.Attempt{}, err
		}
		attempt.AudioMIME = audioMIME(header.Header.Get("Content-Type"), header.Filename)
		return attempt, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return domain.Attempt{}, err
		}
		return domain.Attempt{Text: r.PostFormValue("text")}, nil

	default:
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return domain.Attempt{}, nil
			}
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return domain.Attempt{}, err
			}
			return domain.Attempt{}, errors.New("invalid json")
		}
		return domain.Attempt{Text: req.Text}, nil
	}
}

// audioMIME trusts the part's type only when it is audio/*, then the file
// extension. An empty result means WAV downstream.
func audioMIME(contentType, filename string) string {
	if strings.HasPrefix(contentType, "audio/") {
		return contentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); strings.HasPrefix(byExt, "audio/") {
		return byExt
	}
	return ""
}

func (h *SessionHandler) Retry(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Retry(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, sess, err)
}

func (h *SessionHandler) NewLesson(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.NewLesson(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, sess, err)
}

func (h *SessionHandler) Microphone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Granted *bool `json:"granted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Granted == nil {
		badRequest(w, "granted must be true or false")
		return
	}

	sess, err := h.sessions.SetMicrophone(r.Context(), chi.URLParam(r, "id"), *req.Granted)
	h.respond(w, sess, err)
}

func (h *SessionHandler) RequestReport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.RequestReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, h.log, "session", err)
		return
	}
	writeJSON(w, http.StatusAccepted, sess.Snapshot())
}

func (h *SessionHandler) DismissReport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.DismissReport(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, sess, err)
}

// Speech answers with a WAV file, or 204 when no audio could be produced.
func (h *SessionHandler) Speech(w http.ResponseWriter, r *http.Request) {
	wav, err := h.sessions.Speak(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, h.log, "speech", err)
		return
	}
	if len(wav) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wav)
}

func (h *SessionHandler) respond(w http.ResponseWriter, sess *session.Session, err error) {
	if err != nil {
		respondWithError(w, h.log, "session", err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

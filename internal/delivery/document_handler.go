package delivery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/memo_coach/internal/domain"
	"github.com/Vovarama1992/memo_coach/internal/ports"
)

type Extractor interface {
	Extract(ctx context.Context, data []byte, mime, filename string) (*domain.DocumentExtractionResult, error)
}

type DocumentHandler struct {
	extractor Extractor
	archive   ports.Archive
	maxUpload int64
	log       *logger.ZapLogger
}

// NewDocumentHandler builds the upload endpoint; archive may be nil.
func NewDocumentHandler(extractor Extractor, archive ports.Archive, maxUpload int64, log *logger.ZapLogger) *DocumentHandler {
	if maxUpload <= 0 {
		maxUpload = 20 << 20
	}
	return &DocumentHandler{extractor: extractor, archive: archive, maxUpload: maxUpload, log: log}
}

func (h *DocumentHandler) Extract(w http.ResponseWriter, r *http.Request) {
	// запас на заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: string(domain.KindValidation), Message: "upload too large"})
			return
		}
		badRequest(w, "invalid multipart: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	result, err := h.extractor.Extract(r.Context(), data, contentType, header.Filename)
	if err != nil {
		respondWithError(w, h.log, "extraction", err)
		return
	}

	if h.archive != nil {
		go h.saveDocument(header.Filename, data, contentType)
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DocumentHandler) saveDocument(filename string, data []byte, contentType string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := h.archive.SaveDocument(ctx, filename, data, contentType); err != nil && h.log != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "document archive failed", Service: "extraction", Error: err})
	}
}

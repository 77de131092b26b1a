package domain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/Vovarama1992/memo_coach/internal/ports"
)

type archiveService struct {
	client ports.S3Client
	now    func() time.Time
}

func NewArchiveService(client ports.S3Client) ports.Archive {
	return &archiveService{client: client, now: time.Now}
}

// ObjectKey строит путь в бакете: kind/date/session/xid-filename
func (s *archiveService) ObjectKey(sessionID, kind, filename string) string {
	date := s.now().Format("2006-01-02")
	clean := filepath.Base(filename)
	if sessionID == "" {
		sessionID = "anonymous"
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s", kind, date, sessionID, xid.New().String(), clean)
}

func (s *archiveService) SaveAttemptAudio(ctx context.Context, sessionID string, audio []byte, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio")
	}
	key := s.ObjectKey(sessionID, "attempts", "attempt"+audioExt(contentType))
	return s.client.PutObject(ctx, key, bytes.NewReader(audio), int64(len(audio)), contentType)
}

func (s *archiveService) SaveDocument(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	key := s.ObjectKey("", "documents", filename)
	return s.client.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}

func audioExt(contentType string) string {
	switch {
	case strings.Contains(contentType, "webm"):
		return ".webm"
	case strings.Contains(contentType, "ogg"):
		return ".ogg"
	case strings.Contains(contentType, "mpeg"), strings.Contains(contentType, "mp3"):
		return ".mp3"
	case strings.Contains(contentType, "mp4"), strings.Contains(contentType, "m4a"):
		return ".m4a"
	}
	return ".wav"
}

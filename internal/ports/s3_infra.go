package ports

import (
	"context"
	"io"
)

// Низкоуровневый клиент к S3
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}

// Archive keeps raw uploads (attempt audio, lesson documents) for later review.
type Archive interface {
	ObjectKey(sessionID, kind, filename string) string
	SaveAttemptAudio(ctx context.Context, sessionID string, audio []byte, contentType string) (string, error)
	SaveDocument(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

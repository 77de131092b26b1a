package ports

import (
	"context"
	"time"
)

// JournalEntry: одна завершённая попытка, для родителя.
type JournalEntry struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	LessonTitle   string    `json:"lesson_title"`
	Mode          string    `json:"mode"`
	Score         *int      `json:"score"`
	Transcription string    `json:"transcription,omitempty"`
	AudioURL      *string   `json:"audio_url,omitempty"`
	Failed        bool      `json:"failed"`
	CreatedAt     time.Time `json:"created_at"`
}

// AttemptJournal is write-mostly audit storage. It is never read back into
// session statistics.
type AttemptJournal interface {
	Record(ctx context.Context, e JournalEntry) error
	List(ctx context.Context, sessionID string) ([]JournalEntry, error)
}

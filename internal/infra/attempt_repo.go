package infra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/Vovarama1992/memo_coach/internal/ports"
)

// AttemptRepo is the Postgres attempt journal.
type AttemptRepo struct {
	db *sql.DB
}

var _ ports.AttemptJournal = (*AttemptRepo)(nil)

func NewAttemptRepo(db *sql.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Init создаёт таблицу журнала, если её ещё нет
func (r *AttemptRepo) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS attempt_journal (
			id            TEXT PRIMARY KEY,
			session_id    TEXT NOT NULL,
			lesson_title  TEXT NOT NULL,
			mode          TEXT NOT NULL,
			score         INTEGER,
			transcription TEXT NOT NULL DEFAULT '',
			audio_url     TEXT,
			failed        BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS attempt_journal_session_idx
			ON attempt_journal (session_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("init attempt_journal: %w", err)
	}
	return nil
}

func (r *AttemptRepo) Record(ctx context.Context, e ports.JournalEntry) error {
	if e.ID == "" {
		e.ID = xid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempt_journal
			(id, session_id, lesson_title, mode, score, transcription, audio_url, failed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.SessionID, e.LessonTitle, e.Mode, e.Score, e.Transcription, e.AudioURL, e.Failed, e.CreatedAt)
	return err
}

func (r *AttemptRepo) List(ctx context.Context, sessionID string) ([]ports.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, lesson_title, mode, score, transcription, audio_url, failed, created_at
		FROM attempt_journal
		WHERE session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []ports.JournalEntry{}
	for rows.Next() {
		var e ports.JournalEntry
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.LessonTitle,
			&e.Mode,
			&e.Score,
			&e.Transcription,
			&e.AudioURL,
			&e.Failed,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

package infra

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/domain"
	"github.com/Vovarama1992/memo_coach/internal/ports"
)

func TestAuthRepoInit(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		execs   int
	}{
		{"seeds configured password", "  secret \n", 2},
		{"no password configured", "   ", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, fake := newFakeDB(t)
			if err := NewAuthRepo(db).Init(context.Background(), tt.initial); err != nil {
				t.Fatalf("init: %v", err)
			}

			calls := fake.recorded()
			if len(calls) != tt.execs {
				t.Fatalf("execs = %d, want %d", len(calls), tt.execs)
			}
			if !strings.Contains(calls[0].query, "CREATE TABLE IF NOT EXISTS parent_auth") {
				t.Errorf("first exec = %q", calls[0].query)
			}
			if tt.execs == 2 {
				seed := calls[1]
				if !strings.Contains(seed.query, "ON CONFLICT (id) DO NOTHING") {
					t.Errorf("seed must not overwrite a stored password: %q", seed.query)
				}
				if len(seed.args) != 1 || seed.args[0] != "secret" {
					t.Errorf("seed args = %v", seed.args)
				}
			}
		})
	}
}

func TestAuthRepoGetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("no row disables login", func(t *testing.T) {
		db, _ := newFakeDB(t)
		repo := NewAuthRepo(db)

		got, err := repo.GetPassword(ctx)
		if err != nil || got != "" {
			t.Fatalf("GetPassword = %q, %v", got, err)
		}

		_, err = domain.NewAuthService(repo, "key").Login(ctx, "")
		if !errors.Is(err, domain.ErrInvalidPassword) {
			t.Errorf("login with no stored password: %v", err)
		}
	})

	t.Run("stored password is trimmed", func(t *testing.T) {
		db, fake := newFakeDB(t)
		fake.answer("FROM parent_auth", fakeResult{
			cols: []string{"password"},
			rows: [][]driver.Value{{" secret\n"}},
		})
		repo := NewAuthRepo(db)

		got, err := repo.GetPassword(ctx)
		if err != nil || got != "secret" {
			t.Fatalf("GetPassword = %q, %v", got, err)
		}

		token, err := domain.NewAuthService(repo, "key").Login(ctx, "secret")
		if err != nil || token == "" {
			t.Errorf("login: %q, %v", token, err)
		}
	})

	t.Run("query error is returned", func(t *testing.T) {
		db, fake := newFakeDB(t)
		fake.answer("FROM parent_auth", fakeResult{err: errors.New("connection reset")})

		if _, err := NewAuthRepo(db).GetPassword(ctx); err == nil || !strings.Contains(err.Error(), "connection reset") {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestAttemptRepoRecordAndList(t *testing.T) {
	ctx := context.Background()
	db, fake := newFakeDB(t)
	repo := NewAttemptRepo(db)

	at := time.Date(2026, 3, 1, 9, 0, 1, 0, time.UTC)
	score := 60
	if err := repo.Record(ctx, ports.JournalEntry{
		SessionID:   "s1",
		LessonTitle: "My Lesson",
		Mode:        "text",
		Score:       &score,
		CreatedAt:   at,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	calls := fake.recorded()
	if len(calls) != 1 || len(calls[0].args) != 9 {
		t.Fatalf("execs = %+v", calls)
	}
	args := calls[0].args
	if id, _ := args[0].(string); id == "" {
		t.Error("record must generate an id")
	}
	if args[4] != int64(60) || args[6] != nil {
		t.Errorf("score/audio args = %v/%v", args[4], args[6])
	}
	if got, _ := args[8].(time.Time); !got.Equal(at) {
		t.Errorf("created_at arg = %v, want %v", args[8], at)
	}

	url := "https://s3.local/a.webm"
	fake.answer("FROM attempt_journal", fakeResult{
		cols: []string{"id", "session_id", "lesson_title", "mode", "score", "transcription", "audio_url", "failed", "created_at"},
		rows: [][]driver.Value{
			{"a", "s1", "My Lesson", "text", int64(60), "", nil, false, at},
			{"b", "s1", "My Lesson", "audio", nil, "", url, true, at.Add(time.Second)},
		},
	})

	entries, err := repo.List(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Score == nil || *entries[0].Score != 60 || entries[0].AudioURL != nil {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Score != nil || entries[1].AudioURL == nil || *entries[1].AudioURL != url || !entries[1].Failed {
		t.Errorf("second entry = %+v", entries[1])
	}
	if !entries[1].CreatedAt.After(entries[0].CreatedAt) {
		t.Error("entries must come back in created_at order")
	}
}

package domain

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(StaticPassword("hunter2"), "secret")

	if _, err := svc.Login(ctx, "wrong"); err != ErrInvalidPassword {
		t.Fatalf("wrong password err = %v", err)
	}

	token, err := svc.Login(ctx, "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if ok, _ := svc.ValidateToken(ctx, token); !ok {
		t.Fatal("issued token rejected")
	}
	if ok, _ := svc.ValidateToken(ctx, token+"x"); ok {
		t.Fatal("tampered token accepted")
	}

	empty := NewAuthService(StaticPassword(""), "secret")
	if _, err := empty.Login(ctx, ""); err == nil {
		t.Fatal("login must be disabled without a configured password")
	}
}

type fakeS3 struct {
	key  string
	body []byte
	ct   string
}

func (f *fakeS3) PutObject(_ context.Context, key string, r io.Reader, _ int64, ct string) (string, error) {
	b, _ := io.ReadAll(r)
	f.key, f.body, f.ct = key, b, ct
	return "https://s3.local/bucket/" + key, nil
}

func TestArchiveService(t *testing.T) {
	s3 := &fakeS3{}
	svc := NewArchiveService(s3).(*archiveService)
	svc.now = func() time.Time { return time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC) }

	url, err := svc.SaveAttemptAudio(context.Background(), "sess-1", []byte("RIFF"), "audio/webm")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(s3.key, "attempts/2025-05-02/sess-1/") || !strings.HasSuffix(s3.key, "-attempt.webm") {
		t.Errorf("unexpected key %q", s3.key)
	}
	if !bytes.Equal(s3.body, []byte("RIFF")) || s3.ct != "audio/webm" {
		t.Errorf("unexpected upload %q %q", s3.body, s3.ct)
	}
	if !strings.HasSuffix(url, s3.key) {
		t.Errorf("url %q", url)
	}

	if _, err := svc.SaveDocument(context.Background(), "../../etc/lesson.pdf", []byte("%PDF"), MimePDF); err != nil {
		t.Fatalf("save doc: %v", err)
	}
	if !strings.HasPrefix(s3.key, "documents/2025-05-02/anonymous/") || !strings.HasSuffix(s3.key, "-lesson.pdf") {
		t.Errorf("unexpected doc key %q", s3.key)
	}

	if _, err := svc.SaveAttemptAudio(context.Background(), "s", nil, "audio/wav"); err == nil {
		t.Error("empty audio must fail")
	}
}

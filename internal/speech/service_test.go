package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/domain"
)

type fakeSpeaker struct {
	pcm  []byte
	err  error
	text string
}

func (f *fakeSpeaker) Speak(_ context.Context, text string) ([]byte, int, error) {
	f.text = text
	return f.pcm, 24000, f.err
}

func TestSynthesize(t *testing.T) {
	ok := &fakeSpeaker{pcm: []byte{1, 0, 2, 0}}
	wav := NewService(ok, time.Second).Synthesize(context.Background(), "Great job")
	if len(wav) != 48 || string(wav[:4]) != "RIFF" {
		t.Fatalf("unexpected wav %d bytes", len(wav))
	}

	failing := &fakeSpeaker{err: errors.New("status code: 500")}
	if got := NewService(failing, time.Second).Synthesize(context.Background(), "hi"); got != nil {
		t.Fatal("failure must yield nil audio")
	}

	empty := &fakeSpeaker{}
	if got := NewService(empty, time.Second).Synthesize(context.Background(), "hi"); got != nil {
		t.Fatal("empty pcm must yield nil audio")
	}

	if got := NewService(ok, time.Second).Synthesize(context.Background(), "   "); got != nil {
		t.Fatal("blank text must not be synthesized")
	}

	var nilSvc *Service
	if nilSvc.Synthesize(context.Background(), "hi") != nil {
		t.Fatal("nil service must yield nil")
	}
}

func TestFeedbackSummary(t *testing.T) {
	f := &domain.FeedbackResponse{
		OverallScore:         85,
		EncouragementMessage: "Well done!",
		Strengths:            []string{"You remembered the order"},
	}
	got := FeedbackSummary(f)
	want := "Well done! You scored 85 points. You remembered the order."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	noStrengths := FeedbackSummary(&domain.FeedbackResponse{OverallScore: 10, EncouragementMessage: "Keep going."})
	if !strings.HasPrefix(noStrengths, "Keep going. You scored 10 points.") {
		t.Errorf("got %q", noStrengths)
	}
	if FeedbackSummary(nil) != "" {
		t.Error("nil feedback must produce empty text")
	}
}

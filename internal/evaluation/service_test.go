package evaluation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/ai/aitest"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

const okReply = `{
  "overall_score": 82,
  "grade_level": "Good",
  "encouragement_message": "Great effort!",
  "accuracy_breakdown": {"similarity_score": 80, "key_concepts_score": 85, "structure_score": 79.6},
  "mismatches": [{"type": "omission", "severity": "moderate", "description": "missed a line",
                  "original": "the lazy dog", "student_said": "", "impact": "meaning", "memory_aid": "picture a dog"}],
  "strengths": ["good rhythm"],
  "transcription": "the quick brown fox"
}`

func TestEvaluateBuildsPartsInOrder(t *testing.T) {
	gen := &aitest.Generator{Reply: okReply}
	c := NewClient(gen, time.Second)

	stats := domain.NewSessionStats(time.Now()).Record(60, time.Now())
	fb, err := c.Evaluate(context.Background(), "The quick brown fox", domain.Attempt{Text: "the quick fox"}, stats)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fb.OverallScore != 82 || fb.AccuracyBreakdown.StructureScore != 80 {
		t.Errorf("unexpected feedback %+v", fb)
	}

	req := gen.Last()
	if len(req.Parts) != 3 {
		t.Fatalf("parts = %d", len(req.Parts))
	}
	if req.Parts[0].Text != "CONTEXT: Attempt 2, Best 60" {
		t.Errorf("context part = %q", req.Parts[0].Text)
	}
	if req.Parts[1].Text != `User typed: "the quick fox"` {
		t.Errorf("attempt part = %q", req.Parts[1].Text)
	}
	if req.Parts[2].Text != `Compare with: "The quick brown fox"` {
		t.Errorf("reference part = %q", req.Parts[2].Text)
	}
	if req.Schema == nil || req.System == "" {
		t.Error("schema and system instruction must be set")
	}
}

func TestEvaluateAudioWinsOverText(t *testing.T) {
	gen := &aitest.Generator{Reply: okReply}
	c := NewClient(gen, time.Second)

	_, err := c.Evaluate(context.Background(), "passage text",
		domain.Attempt{Audio: []byte("RIFF"), Text: "ignored"}, domain.NewSessionStats(time.Now()))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	p := gen.Last().Parts[1]
	if !p.IsAudio() || p.MIME != "audio/wav" {
		t.Errorf("expected inline wav part, got %+v", p)
	}
	for _, part := range gen.Last().Parts {
		if strings.Contains(part.Text, "ignored") {
			t.Error("typed text must not be sent with audio")
		}
	}
}

func TestEvaluateEmptyAttemptMakesNoCall(t *testing.T) {
	gen := &aitest.Generator{Reply: okReply}
	c := NewClient(gen, time.Second)

	_, err := c.Evaluate(context.Background(), "passage text", domain.Attempt{Text: "  "}, domain.SessionStats{})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("err = %v", err)
	}
	_, err = c.Evaluate(context.Background(), "", domain.Attempt{Text: "x"}, domain.SessionStats{})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("empty reference err = %v", err)
	}
	if gen.Calls() != 0 {
		t.Fatalf("generator called %d times", gen.Calls())
	}
}

func TestEvaluateFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"transport", "", errors.New("status code: 500")},
		{"malformed", "not json at all", nil},
		{"missing transcription", `{"overall_score": 50, "encouragement_message": "ok"}`, nil},
		{"score too high", `{"overall_score": 140, "encouragement_message": "ok", "transcription": ""}`, nil},
		{"score negative", `{"overall_score": -3, "encouragement_message": "ok", "transcription": ""}`, nil},
		{"score as text", `{"overall_score": "high", "encouragement_message": "ok", "transcription": ""}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(&aitest.Generator{Reply: tt.reply, Err: tt.err}, time.Second)
			fb, err := c.Evaluate(context.Background(), "passage text", domain.Attempt{Text: "x"}, domain.SessionStats{})
			if fb != nil {
				t.Fatalf("expected no feedback, got %+v", fb)
			}
			if !errors.Is(err, domain.ErrEvaluationFailed) {
				t.Fatalf("err = %v, want ErrEvaluationFailed", err)
			}
			if domain.KindOf(err) != domain.KindServiceCall {
				t.Fatalf("kind = %q", domain.KindOf(err))
			}
		})
	}
}

func TestParseFeedbackDefaults(t *testing.T) {
	fb, err := parseFeedback("```json\n" + `{"overall_score": 99.6, "encouragement_message": "Wow", "transcription": "t",
		"mismatches": [{"type": "paraphrase", "severity": "minor"}],
		"speech_analysis": {"confidence_score": 1.7}}` + "\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fb.OverallScore != 100 {
		t.Errorf("score = %d", fb.OverallScore)
	}
	if fb.Strengths == nil || fb.ImprovementAreas == nil || fb.Achievements == nil {
		t.Error("collections must default to empty")
	}
	if fb.LearningTip != nil {
		t.Error("absent learning tip must stay nil")
	}
	if fb.Mismatches[0].Type != "paraphrase" {
		t.Error("unknown mismatch type must be kept as-is")
	}
	if fb.SpeechAnalysis == nil || fb.SpeechAnalysis.ConfidenceScore != 1 || fb.SpeechAnalysis.QualityFlags == nil {
		t.Errorf("speech analysis = %+v", fb.SpeechAnalysis)
	}
}

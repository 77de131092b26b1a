package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestResolveDocumentMIME(t *testing.T) {
	tests := []struct {
		mime, name string
		want       string
		wantErr    bool
	}{
		{MimePDF, "a.pdf", MimePDF, false},
		{"application/pdf; charset=binary", "a", MimePDF, false},
		{"", "lesson.DOCX", MimeDOCX, false},
		{"", "old.doc", MimeDOC, false},
		{"application/octet-stream", "scan.pdf", MimePDF, false},
		{"", "notes.pdf", MimePDF, false},
		{"image/png", "photo.png", "", true},
		{"text/plain", "notes.txt", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveDocumentMIME(tt.mime, tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q/%q: err = %v, wantErr %v", tt.mime, tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%q/%q: got %q, want %q", tt.mime, tt.name, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrEvaluationFailed, errors.New("boom"))
	if !errors.Is(err, ErrEvaluationFailed) {
		t.Fatal("errors.Is lost the sentinel")
	}
	if KindOf(err) != KindServiceCall {
		t.Fatalf("kind = %q", KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatal("plain error must have no kind")
	}
}

func TestFeedbackHelpers(t *testing.T) {
	bands := map[int]string{100: "excellent", 90: "excellent", 89: "good", 70: "good", 50: "fair", 49: "needs_practice", 0: "needs_practice"}
	for score, want := range bands {
		if got := ScoreBand(score); got != want {
			t.Errorf("ScoreBand(%d) = %q, want %q", score, got, want)
		}
	}

	if QualityFlagLabel("low_volume") != "Low volume" {
		t.Error("known flag not labelled")
	}
	if QualityFlagLabel("echo") != "echo" {
		t.Error("unknown flag must pass through")
	}

	f := FeedbackResponse{Mismatches: []Mismatch{
		{Severity: SeverityCritical}, {Severity: SeverityMinor}, {Severity: SeverityMinor},
	}}
	counts := f.SeverityCounts()
	if counts[SeverityCritical] != 1 || counts[SeverityMinor] != 2 || counts[SeverityModerate] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

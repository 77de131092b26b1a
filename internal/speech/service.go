package speech

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

const DefaultTimeout = 30 * time.Second

// Service reads short feedback aloud. Failures are never surfaced to the
// caller: speech is an optional extra on the feedback screen.
type Service struct {
	tts     ai.Speaker
	timeout time.Duration
}

func NewService(tts ai.Speaker, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{tts: tts, timeout: timeout}
}

// Synthesize returns WAV bytes, or nil when speech is unavailable.
func (s *Service) Synthesize(ctx context.Context, text string) []byte {
	text = strings.TrimSpace(text)
	if s == nil || s.tts == nil || text == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	pcm, rate, err := s.tts.Speak(ctx, text)
	if err != nil {
		log.Printf("[speech] %v: %v (%s)", domain.ErrSynthesisFailed, err, ai.Diagnose(err))
		return nil
	}
	if len(pcm) == 0 {
		log.Printf("[speech] %v: empty audio", domain.ErrSynthesisFailed)
		return nil
	}

	log.Printf("[speech] synthesized %d chars -> %d bytes pcm in %s", len(text), len(pcm), time.Since(start))
	return PCMToWAV(pcm, rate)
}

// FeedbackSummary is the short text read aloud after an evaluation. It never
// includes the reference passage.
func FeedbackSummary(f *domain.FeedbackResponse) string {
	if f == nil {
		return ""
	}
	strength := ""
	if len(f.Strengths) > 0 {
		strength = f.Strengths[0]
	}
	return strings.TrimSpace(fmt.Sprintf("%s You scored %d points. %s.",
		strings.TrimSpace(f.EncouragementMessage), f.OverallScore, strength))
}

package evaluation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

const DefaultTimeout = 120 * time.Second

// Client scores one recollection attempt against the reference passage.
type Client struct {
	gen     ai.Generator
	timeout time.Duration
}

func NewClient(gen ai.Generator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{gen: gen, timeout: timeout}
}

func (c *Client) Evaluate(
	ctx context.Context,
	reference string,
	attempt domain.Attempt,
	stats domain.SessionStats,
) (*domain.FeedbackResponse, error) {

	if strings.TrimSpace(reference) == "" {
		return nil, domain.NewValidation("reference text is empty")
	}
	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	log.Printf("[evaluation] >>> START mode=%s attempt=%d best=%d", attempt.Mode(), stats.Attempts+1, stats.BestScore)

	resp, err := c.gen.Generate(ctx, ai.Request{
		System:     systemInstruction,
		Parts:      buildParts(reference, attempt, stats),
		Schema:     &feedbackSchema,
		SchemaName: "feedback_response",
	})
	if err != nil {
		log.Printf("[evaluation] provider error: %v (%s)", err, ai.Diagnose(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrEvaluationFailed, err)
	}

	feedback, err := parseFeedback(resp.Text)
	if err != nil {
		log.Printf("[evaluation] parse error: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrEvaluationFailed, err)
	}

	log.Printf("[evaluation] <<< DONE score=%d mismatches=%d in %s",
		feedback.OverallScore, len(feedback.Mismatches), time.Since(start))
	return feedback, nil
}

// buildParts keeps the part order fixed: context, attempt, reference.
func buildParts(reference string, attempt domain.Attempt, stats domain.SessionStats) []ai.Part {
	parts := []ai.Part{
		ai.TextPart(fmt.Sprintf("CONTEXT: Attempt %d, Best %d", stats.Attempts+1, stats.BestScore)),
	}

	if attempt.HasAudio() {
		mime := attempt.AudioMIME
		if mime == "" {
			mime = "audio/wav"
		}
		parts = append(parts, ai.DataPart(attempt.Audio, mime))
	} else {
		parts = append(parts, ai.TextPart(fmt.Sprintf("User typed: \"%s\"", attempt.Text)))
	}

	return append(parts, ai.TextPart(fmt.Sprintf("Compare with: \"%s\"", reference)))
}

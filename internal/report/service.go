package report

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

const DefaultTimeout = 60 * time.Second

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

// Generate builds a parent-facing summary of the current practice run.
func (c *Client) Generate(ctx context.Context, stats domain.SessionStats, now time.Time) (*domain.ParentReport, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt, err := buildPrompt(stats, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReportFailed, err)
	}

	log.Printf("[report] >>> START attempts=%d best=%d", stats.Attempts, stats.BestScore)

	resp, err := c.gen.Generate(ctx, ai.Request{
		System:     systemInstruction,
		Parts:      []ai.Part{ai.TextPart(prompt)},
		Schema:     &reportSchema,
		SchemaName: "parent_report",
	})
	if err != nil {
		log.Printf("[report] provider error: %v (%s)", err, ai.Diagnose(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrReportFailed, err)
	}

	out, err := parseReport(resp.Text)
	if err != nil {
		log.Printf("[report] parse error: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrReportFailed, err)
	}
	return out, nil
}

func buildPrompt(stats domain.SessionStats, now time.Time) (string, error) {
	history := stats.History
	if history == nil {
		history = []domain.ScorePoint{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "", err
	}
	minutes := int(math.Round(stats.Duration(now).Minutes()))
	return fmt.Sprintf("Report stats: %dm duration, %d attempts, history: %s", minutes, stats.Attempts, b), nil
}

package error_notificator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type captureInfra struct{ texts []string }

func (c *captureInfra) Notify(_ context.Context, err error, details string) error {
	c.texts = append(c.texts, formatAlert(err, details))
	return nil
}

func TestServiceNotify(t *testing.T) {
	infra := &captureInfra{}
	svc := NewService(infra)

	if err := svc.Notify(context.Background(), nil, "ignored"); err != nil {
		t.Fatalf("nil error: %v", err)
	}
	if err := svc.Notify(context.Background(), errors.New("status code: 401"), "evaluation, session s1"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(infra.texts) != 1 {
		t.Fatalf("alerts = %d", len(infra.texts))
	}
	text := infra.texts[0]
	for _, want := range []string{"status code: 401", "Invalid API key.", "session s1"} {
		if !strings.Contains(text, want) {
			t.Errorf("alert %q missing %q", text, want)
		}
	}
}

func TestServiceFallsBackToLog(t *testing.T) {
	if err := NewService(nil).Notify(context.Background(), errors.New("x"), "y"); err != nil {
		t.Fatalf("log fallback: %v", err)
	}
}

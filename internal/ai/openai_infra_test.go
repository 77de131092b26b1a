package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
)

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
}

func TestOpenAIGenerateSendsSchemaAndParts(t *testing.T) {
	var body map[string]any
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`)
	})

	resp, err := c.Generate(context.Background(), Request{
		System: "be kind",
		Parts:  []Part{TextPart("one"), DataPart([]byte("plain text"), "text/plain"), TextPart("two")},
		Schema: &jsonschema.Definition{
			Type:       jsonschema.Object,
			Properties: map[string]jsonschema.Definition{"ok": {Type: jsonschema.Boolean}},
			Required:   []string{"ok"},
		},
		SchemaName: "probe",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != `{"ok":true}` {
		t.Fatalf("text = %q", resp.Text)
	}

	if body["model"] != DefaultOpenAIModel {
		t.Errorf("model = %v", body["model"])
	}
	rf, _ := body["response_format"].(map[string]any)
	if rf["type"] != "json_schema" {
		t.Errorf("response_format = %v", rf)
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d", len(msgs))
	}
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].([]any)
	if len(content) != 3 {
		t.Fatalf("user parts = %d", len(content))
	}
	mid, _ := content[1].(map[string]any)
	if mid["text"] != "plain text" {
		t.Errorf("text/plain data not inlined: %v", mid)
	}
}

func TestOpenAIGenerateTranscribesAudio(t *testing.T) {
	var chatBody string
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/audio/transcriptions":
			_, _ = io.WriteString(w, `{"text":"the fox jumps"}`)
		case "/v1/chat/completions":
			raw, _ := io.ReadAll(r.Body)
			chatBody = string(raw)
			_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"{}"}}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	_, err := c.Generate(context.Background(), Request{
		Parts: []Part{DataPart([]byte("RIFF...."), "audio/wav")},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(chatBody, `Transcribed speech: \"the fox jumps\"`) {
		t.Errorf("transcription not inlined: %s", chatBody)
	}
}

func TestOpenAIGenerateRejectsBinaryDocuments(t *testing.T) {
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Generate(context.Background(), Request{
		Parts: []Part{DataPart([]byte("%PDF-1.4"), "application/pdf")},
	})
	if err == nil {
		t.Fatal("expected error for inline pdf")
	}
}

func TestOpenAIGenerateErrorStatus(t *testing.T) {
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
	})
	_, err := c.Generate(context.Background(), Request{Parts: []Part{TextPart("x")}})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Diagnose(err); got != "Rate limit or quota exceeded." {
		t.Errorf("diagnose = %q", got)
	}
}

func TestOpenAISpeakReturnsPCM(t *testing.T) {
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(raw), `"response_format":"pcm"`) {
			t.Errorf("pcm not requested: %s", raw)
		}
		_, _ = w.Write([]byte{1, 0, 2, 0})
	})

	pcm, rate, err := c.Speak(context.Background(), "well done")
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if rate != 24000 || len(pcm) != 4 {
		t.Errorf("rate=%d len=%d", rate, len(pcm))
	}
}

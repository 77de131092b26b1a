package ai

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Part is one piece of a user turn: either text or inline bytes with a MIME type.
type Part struct {
	Text string
	Data []byte
	MIME string
}

func TextPart(s string) Part { return Part{Text: s} }

func DataPart(data []byte, mime string) Part { return Part{Data: data, MIME: mime} }

func (p Part) IsData() bool { return len(p.Data) > 0 }

func (p Part) IsAudio() bool { return p.IsData() && strings.HasPrefix(p.MIME, "audio/") }

type Request struct {
	Model      string // пусто: модель провайдера по умолчанию
	System     string
	Parts      []Part
	Schema     *jsonschema.Definition
	SchemaName string
}

type Response struct {
	Text string
}

// Generator sends one structured request to a generative service.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
	// InlineDocuments reports whether PDF/Word bytes can be sent as parts.
	InlineDocuments() bool
	Name() string
}

// Speaker turns short text into raw 16-bit mono PCM.
type Speaker interface {
	Speak(ctx context.Context, text string) (pcm []byte, sampleRate int, err error)
}

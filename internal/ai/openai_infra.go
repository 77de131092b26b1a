package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel = openai.GPT4oMini
	DefaultOpenAIVoice = "alloy"
	// pcm из /audio/speech: 24kHz, 16-bit, mono
	openAIPCMRate = 24000
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

type OpenAIClient struct {
	client *openai.Client
	model  string
	voice  string
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	voice := cfg.Voice
	if voice == "" {
		voice = DefaultOpenAIVoice
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(conf),
		model:  model,
		voice:  voice,
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

// Chat completions cannot take PDF/Word bytes, documents are pre-extracted.
func (c *OpenAIClient) InlineDocuments() bool { return false }

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (Response, error) {
	parts := make([]openai.ChatMessagePart, 0, len(req.Parts))
	for i, p := range req.Parts {
		switch {
		case p.IsAudio():
			text, err := c.transcribe(ctx, p)
			if err != nil {
				return Response{}, err
			}
			parts = append(parts, textPart(fmt.Sprintf("Transcribed speech: \"%s\"", text)))
		case p.IsData() && strings.HasPrefix(p.MIME, "text/"):
			parts = append(parts, textPart(string(p.Data)))
		case p.IsData():
			return Response{}, fmt.Errorf("openai: part %d: inline %s is not supported", i, p.MIME)
		default:
			parts = append(parts, textPart(p.Text))
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})

	model := req.Model
	if model == "" {
		model = c.model
	}

	creq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: req.Schema,
			},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return Response{}, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("openai chat: empty choices")
	}
	return Response{Text: resp.Choices[0].Message.Content}, nil
}

func (c *OpenAIClient) transcribe(ctx context.Context, p Part) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "attempt" + audioExt(p.MIME),
		Reader:   bytes.NewReader(p.Data),
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	log.Printf("[ai] whisper transcribed %d bytes -> %d chars", len(p.Data), len(resp.Text))
	return resp.Text, nil
}

func (c *OpenAIClient) Speak(ctx context.Context, text string) ([]byte, int, error) {
	raw, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(c.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("openai speech: %w", err)
	}
	defer raw.Close()

	pcm, err := io.ReadAll(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("openai speech read: %w", err)
	}
	return pcm, openAIPCMRate, nil
}

func textPart(s string) openai.ChatMessagePart {
	return openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: s}
}

// Whisper определяет формат по расширению имени файла
func audioExt(mime string) string {
	switch {
	case strings.Contains(mime, "webm"):
		return ".webm"
	case strings.Contains(mime, "ogg"):
		return ".ogg"
	case strings.Contains(mime, "mpeg"), strings.Contains(mime, "mp3"):
		return ".mp3"
	case strings.Contains(mime, "mp4"), strings.Contains(mime, "m4a"):
		return ".m4a"
	}
	return ".wav"
}

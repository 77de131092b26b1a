package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultGeminiTTSModel = "gemini-2.5-flash-preview-tts"
	geminiPCMRate         = 24000
)

type GeminiConfig struct {
	APIKey   string
	Model    string
	TTSModel string
}

type GeminiClient struct {
	client   *genai.Client
	model    string
	ttsModel string
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	tts := cfg.TTSModel
	if tts == "" {
		tts = DefaultGeminiTTSModel
	}
	return &GeminiClient{client: client, model: model, ttsModel: tts}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) InlineDocuments() bool { return true }

func (c *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.IsData() {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIME))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(req.Schema)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	resp, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generate: %w", err)
	}
	return Response{Text: resp.Text()}, nil
}

func (c *GeminiClient) Speak(ctx context.Context, text string) ([]byte, int, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.ttsModel,
		genai.Text(text),
		&genai.GenerateContentConfig{ResponseModalities: []string{"AUDIO"}})
	if err != nil {
		return nil, 0, fmt.Errorf("gemini speech: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return p.InlineData.Data, geminiPCMRate, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("gemini speech: no audio in response")
}

var genaiTypes = map[jsonschema.DataType]genai.Type{
	jsonschema.Object:  genai.TypeObject,
	jsonschema.Array:   genai.TypeArray,
	jsonschema.String:  genai.TypeString,
	jsonschema.Integer: genai.TypeInteger,
	jsonschema.Number:  genai.TypeNumber,
	jsonschema.Boolean: genai.TypeBoolean,
}

// toGenaiSchema converts the shared JSON schema into Gemini's OpenAPI subset.
func toGenaiSchema(d *jsonschema.Definition) *genai.Schema {
	if d == nil {
		return nil
	}
	s := &genai.Schema{
		Type:        genaiTypes[d.Type],
		Description: d.Description,
		Enum:        d.Enum,
		Required:    d.Required,
	}
	if d.Items != nil {
		s.Items = toGenaiSchema(d.Items)
	}
	if len(d.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(d.Properties))
		for name, prop := range d.Properties {
			prop := prop
			s.Properties[name] = toGenaiSchema(&prop)
		}
	}
	return s
}

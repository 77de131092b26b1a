package extraction

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/doc"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

const (
	DefaultTimeout  = 120 * time.Second
	DefaultMaxBytes = 20 << 20
)

// TextConverter is the local pre-extraction step for providers that cannot
// read documents inline.
type TextConverter interface {
	Convert(ctx context.Context, data []byte, mime string) (doc.Text, error)
}

type Client struct {
	gen      ai.Generator
	conv     TextConverter
	timeout  time.Duration
	maxBytes int64
}

func NewClient(gen ai.Generator, conv TextConverter, timeout time.Duration, maxBytes int64) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Client{gen: gen, conv: conv, timeout: timeout, maxBytes: maxBytes}
}

// Extract returns cleaned lesson text from a PDF or Word file. mime may be
// empty when filename carries a known extension.
func (c *Client) Extract(ctx context.Context, data []byte, mime, filename string) (*domain.DocumentExtractionResult, error) {
	mime, err := domain.ResolveDocumentMIME(mime, filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewValidation("uploaded file is empty")
	}
	if int64(len(data)) > c.maxBytes {
		return nil, domain.NewValidation(fmt.Sprintf("file is too large: %s, limit %s",
			humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(c.maxBytes))))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	log.Printf("[extraction] >>> START %s %s via %s", mime, humanize.IBytes(uint64(len(data))), c.gen.Name())

	filePart, err := c.filePart(ctx, data, mime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	resp, err := c.gen.Generate(ctx, ai.Request{
		System:     systemInstruction,
		Parts:      []ai.Part{filePart, ai.TextPart(instruction)},
		Schema:     &extractionSchema,
		SchemaName: "document_extraction",
	})
	if err != nil {
		log.Printf("[extraction] provider error: %v (%s)", err, ai.Diagnose(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	out, err := parseExtraction(resp.Text)
	if err != nil {
		log.Printf("[extraction] parse error: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	log.Printf("[extraction] <<< DONE %d words, confidence=%s in %s",
		out.Metadata.WordCount, out.QualityAssessment.ConfidenceLevel, time.Since(start))
	return out, nil
}

func (c *Client) filePart(ctx context.Context, data []byte, mime string) (ai.Part, error) {
	if c.gen.InlineDocuments() {
		return ai.DataPart(data, mime), nil
	}
	if c.conv == nil {
		return ai.Part{}, fmt.Errorf("provider %s cannot read %s inline", c.gen.Name(), mime)
	}

	raw, err := c.conv.Convert(ctx, data, mime)
	if err != nil {
		return ai.Part{}, fmt.Errorf("local conversion: %w", err)
	}
	if strings.TrimSpace(raw.Text) == "" {
		return ai.Part{}, fmt.Errorf("document has no text layer")
	}

	header := fmt.Sprintf("Document (%s, %d pages, extracted by %s):\n\n", mime, raw.Pages, raw.Method)
	return ai.DataPart([]byte(header+raw.Text), "text/plain"), nil
}

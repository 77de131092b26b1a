package doc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"
)

// PDFTextReader pulls the text layer out of a PDF in-process.
type PDFTextReader struct{}

func NewPDFTextReader() *PDFTextReader {
	return &PDFTextReader{}
}

func (r *PDFTextReader) ConvertToText(ctx context.Context, data []byte) (out Text, err error) {
	// rsc.io/pdf паникует на битых файлах
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read pdf: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Text{}, fmt.Errorf("open pdf: %w", err)
	}

	total := doc.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return Text{}, err
		}
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		content := p.Content()
		parts := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		pages = append(pages, strings.Join(parts, " "))
	}

	return Text{
		Text:   strings.TrimSpace(strings.Join(pages, "\n\n")),
		Pages:  total,
		Method: "pdf_text_layer",
	}, nil
}

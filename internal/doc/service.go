package doc

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/memo_coach/internal/domain"
)

// Service picks a converter by document type.
type Service struct {
	pdf  Converter
	word Converter
}

func NewService(pdf, word Converter) *Service {
	return &Service{pdf: pdf, word: word}
}

func (s *Service) Convert(ctx context.Context, data []byte, mime string) (Text, error) {
	switch mime {
	case domain.MimePDF:
		return s.pdf.ConvertToText(ctx, data)
	case domain.MimeDOC, domain.MimeDOCX:
		return s.word.ConvertToText(ctx, data)
	}
	return Text{}, fmt.Errorf("no converter for %q", mime)
}

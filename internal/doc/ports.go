package doc

import "context"

// Text is the raw text pulled out of a document before any AI cleanup.
type Text struct {
	Text   string
	Pages  int
	Method string
}

type Converter interface {
	ConvertToText(ctx context.Context, data []byte) (Text, error)
}

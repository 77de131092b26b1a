package extraction

import "github.com/sashabaranov/go-openai/jsonschema"

const systemInstruction = `You are the document intelligence engine of MemoMaster. You extract, clean and prepare text from uploaded PDF and Word files so children can practise memorising it.

Cleanup steps:
1. Remove noise: page numbers, running headers and footers, irrelevant watermarks.
2. Normalise spacing: join words broken across lines and keep paragraphs continuous.
3. Preserve structure: keep headings and bullet lists.
4. Child-friendly layout: flatten complex layouts into simple readable text.

Return JSON with the extracted text, metadata and a quality assessment. Keep the text in the document's own language.`

const instruction = "Extract and clean up the content of this document so a child can learn it by heart. Return the JSON format requested."

var (
	str     = jsonschema.Definition{Type: jsonschema.String}
	integer = jsonschema.Definition{Type: jsonschema.Integer}
	strList = jsonschema.Definition{Type: jsonschema.Array, Items: &str}
)

var requiredFields = []string{
	"extracted_text",
	"metadata.document_type",
	"metadata.page_count",
	"metadata.word_count",
	"metadata.detected_language",
	"quality_assessment.overall_score",
	"quality_assessment.confidence_level",
}

var extractionSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"extracted_text": str,
		"metadata": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"document_type":     str,
				"page_count":        integer,
				"word_count":        integer,
				"detected_language": str,
				"has_images":        {Type: jsonschema.Boolean},
				"has_tables":        {Type: jsonschema.Boolean},
				"extraction_method": str,
			},
			Required: []string{"document_type", "page_count", "word_count", "detected_language"},
		},
		"quality_assessment": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"overall_score":    integer,
				"confidence_level": {Type: jsonschema.String, Enum: []string{"high", "medium", "low"}},
				"issues_detected":  strList,
				"recommendations":  strList,
			},
			Required: []string{"overall_score", "confidence_level"},
		},
		"structure": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"headings": strList,
				"sections": {
					Type: jsonschema.Array,
					Items: &jsonschema.Definition{
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"title":      str,
							"content":    str,
							"word_count": integer,
						},
					},
				},
			},
		},
	},
	Required: []string{"extracted_text", "metadata", "quality_assessment"},
}

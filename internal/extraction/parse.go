package extraction

import (
	"fmt"
	"log"
	"math"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

// Models sometimes write counts as 3.0, so numbers are decoded as float64
// and rounded.
type rawMetadata struct {
	DocumentType     string  `json:"document_type"`
	PageCount        float64 `json:"page_count"`
	WordCount        float64 `json:"word_count"`
	DetectedLanguage string  `json:"detected_language"`
	HasImages        bool    `json:"has_images"`
	HasTables        bool    `json:"has_tables"`
	ExtractionMethod string  `json:"extraction_method"`
}

type rawQuality struct {
	OverallScore    float64  `json:"overall_score"`
	ConfidenceLevel string   `json:"confidence_level"`
	IssuesDetected  []string `json:"issues_detected"`
	Recommendations []string `json:"recommendations"`
}

type rawSection struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	WordCount float64 `json:"word_count"`
}

type rawExtraction struct {
	ExtractedText     string      `json:"extracted_text"`
	Metadata          rawMetadata `json:"metadata"`
	QualityAssessment rawQuality  `json:"quality_assessment"`
	Structure         struct {
		Headings []string     `json:"headings"`
		Sections []rawSection `json:"sections"`
	} `json:"structure"`
}

func parseExtraction(text string) (*domain.DocumentExtractionResult, error) {
	var raw rawExtraction
	if err := ai.DecodeJSON(text, requiredFields, &raw); err != nil {
		return nil, err
	}

	qa := raw.QualityAssessment
	switch qa.ConfidenceLevel {
	case "high", "medium", "low":
	default:
		return nil, fmt.Errorf("confidence_level %q is not high, medium or low", qa.ConfidenceLevel)
	}

	score := round(qa.OverallScore)
	if score < 0 || score > 100 {
		log.Printf("[extraction] quality score %v out of range", qa.OverallScore)
	}

	m := raw.Metadata
	out := &domain.DocumentExtractionResult{
		ExtractedText: raw.ExtractedText,
		Metadata: domain.DocumentMetadata{
			DocumentType:     m.DocumentType,
			PageCount:        round(m.PageCount),
			WordCount:        round(m.WordCount),
			DetectedLanguage: m.DetectedLanguage,
			HasImages:        m.HasImages,
			HasTables:        m.HasTables,
			ExtractionMethod: m.ExtractionMethod,
		},
		QualityAssessment: domain.QualityAssessment{
			OverallScore:    score,
			ConfidenceLevel: qa.ConfidenceLevel,
			IssuesDetected:  orEmpty(qa.IssuesDetected),
			Recommendations: orEmpty(qa.Recommendations),
		},
		Structure: domain.DocumentStructure{
			Headings: orEmpty(raw.Structure.Headings),
			Sections: make([]domain.DocumentSection, 0, len(raw.Structure.Sections)),
		},
	}
	for _, s := range raw.Structure.Sections {
		out.Structure.Sections = append(out.Structure.Sections, domain.DocumentSection{
			Title:     s.Title,
			Content:   s.Content,
			WordCount: round(s.WordCount),
		})
	}
	return out, nil
}

func round(v float64) int {
	return int(math.Round(v))
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

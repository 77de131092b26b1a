package domain

import (
	"path/filepath"
	"strings"
)

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type DocumentMetadata struct {
	DocumentType     string `json:"document_type"`
	PageCount        int    `json:"page_count"`
	WordCount        int    `json:"word_count"`
	DetectedLanguage string `json:"detected_language"`
	HasImages        bool   `json:"has_images"`
	HasTables        bool   `json:"has_tables"`
	ExtractionMethod string `json:"extraction_method"`
}

type QualityAssessment struct {
	OverallScore    int      `json:"overall_score"`
	ConfidenceLevel string   `json:"confidence_level"` // high | medium | low
	IssuesDetected  []string `json:"issues_detected"`
	Recommendations []string `json:"recommendations"`
}

type DocumentSection struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

type DocumentStructure struct {
	Headings []string          `json:"headings"`
	Sections []DocumentSection `json:"sections"`
}

type DocumentExtractionResult struct {
	ExtractedText     string            `json:"extracted_text"`
	Metadata          DocumentMetadata  `json:"metadata"`
	QualityAssessment QualityAssessment `json:"quality_assessment"`
	Structure         DocumentStructure `json:"structure"`
}

// ResolveDocumentMIME returns the canonical MIME type for an upload or a
// validation error. Browsers often send an empty type for Word files, so the
// file extension is used as a fallback.
func ResolveDocumentMIME(mime, filename string) (string, error) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch mime {
	case MimePDF, MimeDOC, MimeDOCX:
		return mime, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		if mime == "" || mime == "application/octet-stream" {
			return MimePDF, nil
		}
	case ".doc":
		return MimeDOC, nil
	case ".docx":
		return MimeDOCX, nil
	}

	return "", NewValidation("only PDF or Word documents are supported")
}

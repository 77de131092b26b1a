package evaluation

import (
	"fmt"
	"log"
	"math"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

type rawBreakdown struct {
	SimilarityScore  float64 `json:"similarity_score"`
	KeyConceptsScore float64 `json:"key_concepts_score"`
	StructureScore   float64 `json:"structure_score"`
}

type rawFeedback struct {
	OverallScore         float64                `json:"overall_score"`
	GradeLevel           string                 `json:"grade_level"`
	EncouragementMessage string                 `json:"encouragement_message"`
	AccuracyBreakdown    rawBreakdown           `json:"accuracy_breakdown"`
	Mismatches           []domain.Mismatch      `json:"mismatches"`
	Strengths            []string               `json:"strengths"`
	ImprovementAreas     []string               `json:"improvement_areas"`
	Transcription        string                 `json:"transcription"`
	Achievements         []domain.Achievement   `json:"achievements"`
	LearningTip          *domain.LearningTip    `json:"learning_tip"`
	SpeechAnalysis       *domain.SpeechAnalysis `json:"speech_analysis"`
}

// parseFeedback validates a raw reply. Anything that is not a usable
// FeedbackResponse is an error.
func parseFeedback(text string) (*domain.FeedbackResponse, error) {
	var raw rawFeedback
	if err := ai.DecodeJSON(text, requiredFields, &raw); err != nil {
		return nil, err
	}

	score := int(math.Round(raw.OverallScore))
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("overall_score %v out of range", raw.OverallScore)
	}

	for i, m := range raw.Mismatches {
		if !m.Type.Valid() || !m.Severity.Valid() {
			log.Printf("[evaluation] mismatch %d has unknown type=%q severity=%q", i, m.Type, m.Severity)
		}
	}

	out := &domain.FeedbackResponse{
		OverallScore:         score,
		GradeLevel:           raw.GradeLevel,
		EncouragementMessage: raw.EncouragementMessage,
		AccuracyBreakdown: domain.AccuracyBreakdown{
			SimilarityScore:  clampScore(raw.AccuracyBreakdown.SimilarityScore),
			KeyConceptsScore: clampScore(raw.AccuracyBreakdown.KeyConceptsScore),
			StructureScore:   clampScore(raw.AccuracyBreakdown.StructureScore),
		},
		Mismatches:       orEmpty(raw.Mismatches),
		Strengths:        orEmpty(raw.Strengths),
		ImprovementAreas: orEmpty(raw.ImprovementAreas),
		Transcription:    raw.Transcription,
		Achievements:     orEmpty(raw.Achievements),
		LearningTip:      raw.LearningTip,
		SpeechAnalysis:   raw.SpeechAnalysis,
	}

	if sa := out.SpeechAnalysis; sa != nil {
		sa.ConfidenceScore = math.Max(0, math.Min(1, sa.ConfidenceScore))
		sa.AlternateInterpretations = orEmpty(sa.AlternateInterpretations)
		sa.QualityFlags = orEmpty(sa.QualityFlags)
	}
	return out, nil
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(100, math.Round(v))))
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

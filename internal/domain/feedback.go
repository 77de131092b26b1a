package domain

type MismatchType string

const (
	MismatchOmission     MismatchType = "omission"
	MismatchAddition     MismatchType = "addition"
	MismatchSubstitution MismatchType = "substitution"
	MismatchSequence     MismatchType = "sequence"
)

func (t MismatchType) Valid() bool {
	switch t {
	case MismatchOmission, MismatchAddition, MismatchSubstitution, MismatchSequence:
		return true
	}
	return false
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityModerate, SeverityMinor:
		return true
	}
	return false
}

type Mismatch struct {
	Type        MismatchType `json:"type"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	Original    string       `json:"original"`
	StudentSaid string       `json:"student_said"`
	Impact      string       `json:"impact"`
	MemoryAid   string       `json:"memory_aid"`
}

type AccuracyBreakdown struct {
	SimilarityScore  int `json:"similarity_score"`
	KeyConceptsScore int `json:"key_concepts_score"`
	StructureScore   int `json:"structure_score"`
}

type Achievement struct {
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

type LearningTip struct {
	TechniqueName  string `json:"technique_name"`
	WhyItHelps     string `json:"why_it_helps"`
	HowToDoIt      string `json:"how_to_do_it"`
	TryItNow       string `json:"try_it_now"`
	ExpectedResult string `json:"expected_result"`
}

type SpeechAnalysis struct {
	OriginalSpeech           string   `json:"original_speech"`
	CleanedSpeech            string   `json:"cleaned_speech"`
	DetectedLanguage         string   `json:"detected_language"`
	ConfidenceScore          float64  `json:"confidence_score"`
	AlternateInterpretations []string `json:"alternate_interpretations"`
	QualityFlags             []string `json:"quality_flags"`
	ProcessingNotes          string   `json:"processing_notes"`
}

// FeedbackResponse is the validated result of one evaluation call.
type FeedbackResponse struct {
	OverallScore         int               `json:"overall_score"`
	GradeLevel           string            `json:"grade_level"`
	EncouragementMessage string            `json:"encouragement_message"`
	AccuracyBreakdown    AccuracyBreakdown `json:"accuracy_breakdown"`
	Mismatches           []Mismatch        `json:"mismatches"`
	Strengths            []string          `json:"strengths"`
	ImprovementAreas     []string          `json:"improvement_areas"`
	Transcription        string            `json:"transcription"`
	Achievements         []Achievement     `json:"achievements"`
	LearningTip          *LearningTip      `json:"learning_tip,omitempty"`
	SpeechAnalysis       *SpeechAnalysis   `json:"speech_analysis,omitempty"`
}

// SeverityCounts groups mismatches by severity for the feedback summary.
func (f *FeedbackResponse) SeverityCounts() map[Severity]int {
	out := map[Severity]int{}
	for _, m := range f.Mismatches {
		out[m.Severity]++
	}
	return out
}

// ScoreBand buckets a score the way the feedback screen colors it.
func ScoreBand(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 50:
		return "fair"
	}
	return "needs_practice"
}

var qualityFlagLabels = map[string]string{
	"background_noise":      "Background noise",
	"low_volume":            "Low volume",
	"multiple_speakers":     "Multiple speakers",
	"unclear_pronunciation": "Unclear pronunciation",
}

// QualityFlagLabel returns a readable label; unknown flags pass through.
func QualityFlagLabel(flag string) string {
	if l, ok := qualityFlagLabels[flag]; ok {
		return l
	}
	return flag
}

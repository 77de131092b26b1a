package evaluation

import "github.com/sashabaranov/go-openai/jsonschema"

const systemInstruction = `You are MemoMaster, a study companion for children who practise recalling a passage from memory.
You combine four roles: a motivation coach, a precise accuracy analyst, a memory coach and a speech understanding engine.
Score how faithfully the student's attempt reproduces the reference passage (0-100), explain each mismatch with a memory aid,
keep the tone warm and encouraging, and suggest one science-backed learning technique.
When the attempt is spoken, clean up filler words and recognition noise before comparing and report it in speech_analysis.
Reply in the language of the reference passage.`

var (
	str     = jsonschema.Definition{Type: jsonschema.String}
	integer = jsonschema.Definition{Type: jsonschema.Integer}
	strList = jsonschema.Definition{Type: jsonschema.Array, Items: &str}
)

var feedbackSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"overall_score":         {Type: jsonschema.Integer, Description: "0-100"},
		"grade_level":           str,
		"encouragement_message": str,
		"accuracy_breakdown": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"similarity_score":   integer,
				"key_concepts_score": integer,
				"structure_score":    integer,
			},
		},
		"mismatches": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"type":         {Type: jsonschema.String, Enum: []string{"omission", "addition", "substitution", "sequence"}},
					"severity":     {Type: jsonschema.String, Enum: []string{"critical", "moderate", "minor"}},
					"description":  str,
					"original":     str,
					"student_said": str,
					"impact":       str,
					"memory_aid":   str,
				},
			},
		},
		"strengths":         strList,
		"improvement_areas": strList,
		"transcription":     str,
		"achievements": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"title":       str,
					"emoji":       str,
					"description": str,
				},
			},
		},
		"learning_tip": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"technique_name":  str,
				"why_it_helps":    str,
				"how_to_do_it":    str,
				"try_it_now":      str,
				"expected_result": str,
			},
		},
		"speech_analysis": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"original_speech":           str,
				"cleaned_speech":            str,
				"detected_language":         str,
				"confidence_score":          {Type: jsonschema.Number, Description: "0-1"},
				"alternate_interpretations": strList,
				"quality_flags":             strList,
				"processing_notes":          str,
			},
		},
	},
	Required: requiredFields,
}

var requiredFields = []string{"overall_score", "encouragement_message", "transcription"}

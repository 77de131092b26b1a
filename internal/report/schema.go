package report

import "github.com/sashabaranov/go-openai/jsonschema"

const systemInstruction = `You are the analytics specialist of MemoMaster. Write a clear, useful progress report for parents following their child's practice.
Base every number on the statistics provided. Reply in the language the parent interface uses for the lesson.`

var (
	str     = jsonschema.Definition{Type: jsonschema.String}
	integer = jsonschema.Definition{Type: jsonschema.Integer}
	strList = jsonschema.Definition{Type: jsonschema.Array, Items: &str}
)

var requiredFields = []string{"report_type", "summary_stats"}

var reportSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"report_type":  {Type: jsonschema.String, Enum: []string{"session", "weekly", "lesson"}},
		"student_name": str,
		"period":       str,
		"summary_stats": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"total_practice_time": str,
				"lessons_practiced":   integer,
				"average_score":       integer,
				"best_score":          integer,
				"improvement_rate":    str,
			},
		},
		"achievements":                 strList,
		"focus_areas":                  strList,
		"parent_tips":                  strList,
		"next_session_recommendations": str,
	},
	Required: requiredFields,
}

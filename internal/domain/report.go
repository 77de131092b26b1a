package domain

type ReportType string

const (
	ReportSession ReportType = "session"
	ReportWeekly  ReportType = "weekly"
	ReportLesson  ReportType = "lesson"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportSession, ReportWeekly, ReportLesson:
		return true
	}
	return false
}

type SummaryStats struct {
	TotalPracticeTime string `json:"total_practice_time"`
	LessonsPracticed  int    `json:"lessons_practiced"`
	AverageScore      int    `json:"average_score"`
	BestScore         int    `json:"best_score"`
	ImprovementRate   string `json:"improvement_rate"`
}

// ParentReport is derived on demand from SessionStats and never stored.
type ParentReport struct {
	ReportType                 ReportType   `json:"report_type"`
	StudentName                string       `json:"student_name"`
	Period                     string       `json:"period"`
	SummaryStats               SummaryStats `json:"summary_stats"`
	Achievements               []string     `json:"achievements"`
	FocusAreas                 []string     `json:"focus_areas"`
	ParentTips                 []string     `json:"parent_tips"`
	NextSessionRecommendations string       `json:"next_session_recommendations"`
}

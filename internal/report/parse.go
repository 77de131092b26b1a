package report

import (
	"fmt"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/domain"
)

func parseReport(text string) (*domain.ParentReport, error) {
	var out domain.ParentReport
	if err := ai.DecodeJSON(text, requiredFields, &out); err != nil {
		return nil, err
	}
	if !out.ReportType.Valid() {
		return nil, fmt.Errorf("report_type %q is not session, weekly or lesson", out.ReportType)
	}

	out.Achievements = orEmpty(out.Achievements)
	out.FocusAreas = orEmpty(out.FocusAreas)
	out.ParentTips = orEmpty(out.ParentTips)
	return &out, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

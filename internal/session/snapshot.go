package session

import (
	"time"

	"github.com/Vovarama1992/memo_coach/internal/domain"
)

// Snapshot is what the UI renders: the raw state plus a few derived fields.
type Snapshot struct {
	ID string `json:"id"`
	State

	ScoreBand        string                  `json:"score_band,omitempty"`
	SeverityCounts   map[domain.Severity]int `json:"severity_counts,omitempty"`
	QualityLabels    []string                `json:"quality_labels,omitempty"`
	MicrophoneNotice string                  `json:"microphone_notice,omitempty"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func (s *Session) Snapshot() Snapshot {
	out := Snapshot{
		ID:        s.ID,
		State:     s.State,
		UpdatedAt: s.UpdatedAt,
	}

	if fb := s.State.Feedback; fb != nil {
		out.ScoreBand = domain.ScoreBand(fb.OverallScore)
		out.SeverityCounts = fb.SeverityCounts()
		if fb.SpeechAnalysis != nil {
			for _, f := range fb.SpeechAnalysis.QualityFlags {
				out.QualityLabels = append(out.QualityLabels, domain.QualityFlagLabel(f))
			}
		}
	}
	if s.State.MicrophoneDenied {
		out.MicrophoneNotice = domain.ErrMicrophoneDenied.Msg
	}
	return out
}

package domain

import "time"

type ScorePoint struct {
	Score     int   `json:"score"`
	Timestamp int64 `json:"timestamp"` // unix ms
}

// SessionStats tracks one lesson's practice run. BestScore equals the max of
// History scores once History is non-empty, else 0.
type SessionStats struct {
	Attempts      int          `json:"attempts"`
	BestScore     int          `json:"best_score"`
	PreviousScore *int         `json:"previous_score"`
	History       []ScorePoint `json:"history"`
	StartTime     int64        `json:"start_time"` // unix ms
}

func NewSessionStats(now time.Time) SessionStats {
	return SessionStats{
		History:   []ScorePoint{},
		StartTime: now.UnixMilli(),
	}
}

// Record returns a copy of s with one completed evaluation applied.
// The receiver's history is never mutated.
func (s SessionStats) Record(score int, at time.Time) SessionStats {
	history := make([]ScorePoint, len(s.History), len(s.History)+1)
	copy(history, s.History)
	history = append(history, ScorePoint{Score: score, Timestamp: at.UnixMilli()})

	prev := score
	out := SessionStats{
		Attempts:      s.Attempts + 1,
		BestScore:     s.BestScore,
		PreviousScore: &prev,
		History:       history,
		StartTime:     s.StartTime,
	}
	if score > out.BestScore {
		out.BestScore = score
	}
	return out
}

// Duration is the practice time elapsed since StartTime.
func (s SessionStats) Duration(now time.Time) time.Duration {
	if s.StartTime == 0 {
		return 0
	}
	return now.Sub(time.UnixMilli(s.StartTime))
}

func (s SessionStats) AverageScore() int {
	if len(s.History) == 0 {
		return 0
	}
	total := 0
	for _, p := range s.History {
		total += p.Score
	}
	return total / len(s.History)
}

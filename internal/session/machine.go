package session

import (
	"errors"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/domain"
)

type Screen string

const (
	ScreenSetup      Screen = "setup"
	ScreenPractice   Screen = "practice"
	ScreenEvaluating Screen = "evaluating"
	ScreenFeedback   Screen = "feedback"
)

// Overlay is the parent report panel. It lives beside the screen and is
// never changed by screen transitions.
type Overlay struct {
	Pending bool                 `json:"pending"`
	Report  *domain.ParentReport `json:"report,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type State struct {
	Screen   Screen                   `json:"screen"`
	Epoch    int                      `json:"epoch"`
	Lesson   *domain.Lesson           `json:"lesson,omitempty"`
	Stats    domain.SessionStats      `json:"stats"`
	Feedback *domain.FeedbackResponse `json:"feedback,omitempty"`
	Overlay  Overlay                  `json:"overlay"`

	MicrophoneDenied bool   `json:"microphone_denied"`
	LastError        string `json:"last_error,omitempty"`
}

func NewState(now time.Time) State {
	return State{Screen: ScreenSetup, Stats: domain.NewSessionStats(now)}
}

type Event interface{ isEvent() }

type (
	StartLesson struct {
		Title   string
		Content string
		At      time.Time
	}
	SubmitAttempt       struct{ Attempt domain.Attempt }
	EvaluationSucceeded struct {
		Feedback *domain.FeedbackResponse
		At       time.Time
	}
	EvaluationFailed struct{ Err error }
	Retry            struct{}
	NewLesson        struct{ At time.Time }

	RequestReport  struct{}
	ReportResolved struct{ Report *domain.ParentReport }
	ReportFailed   struct{ Err error }
	DismissReport  struct{}

	MicrophoneDenied  struct{}
	MicrophoneGranted struct{}
)

func (StartLesson) isEvent()         {}
func (SubmitAttempt) isEvent()       {}
func (EvaluationSucceeded) isEvent() {}
func (EvaluationFailed) isEvent()    {}
func (Retry) isEvent()               {}
func (NewLesson) isEvent()           {}
func (RequestReport) isEvent()       {}
func (ReportResolved) isEvent()      {}
func (ReportFailed) isEvent()        {}
func (DismissReport) isEvent()       {}
func (MicrophoneDenied) isEvent()    {}
func (MicrophoneGranted) isEvent()   {}

// Transition is the whole screen flow. It never mutates s; on error the
// returned state equals s.
func Transition(s State, e Event) (State, error) {
	switch ev := e.(type) {

	case StartLesson:
		if s.Screen != ScreenSetup {
			return s, domain.ErrInvalidTransition
		}
		lesson, err := domain.NewLesson(ev.Title, ev.Content)
		if err != nil {
			return s, err
		}
		next := s
		next.Screen = ScreenPractice
		next.Epoch++
		next.Lesson = &lesson
		next.Stats = domain.NewSessionStats(ev.At)
		next.Feedback = nil
		next.LastError = ""
		return next, nil

	case SubmitAttempt:
		switch s.Screen {
		case ScreenEvaluating:
			return s, domain.ErrEvaluationInFlight
		case ScreenPractice:
		default:
			return s, domain.ErrInvalidTransition
		}
		if err := ev.Attempt.Validate(); err != nil {
			return s, err
		}
		if ev.Attempt.HasAudio() && s.MicrophoneDenied {
			return s, domain.ErrMicrophoneDenied
		}
		next := s
		next.Screen = ScreenEvaluating
		next.LastError = ""
		return next, nil

	case EvaluationSucceeded:
		if s.Screen != ScreenEvaluating {
			return s, domain.ErrInvalidTransition
		}
		if ev.Feedback == nil {
			return s, errors.New("evaluation succeeded without feedback")
		}
		next := s
		next.Screen = ScreenFeedback
		next.Stats = s.Stats.Record(ev.Feedback.OverallScore, ev.At)
		next.Feedback = ev.Feedback
		return next, nil

	case EvaluationFailed:
		if s.Screen != ScreenEvaluating {
			return s, domain.ErrInvalidTransition
		}
		next := s
		next.Screen = ScreenPractice
		next.LastError = errorMessage(ev.Err, domain.ErrEvaluationFailed)
		return next, nil

	case Retry:
		if s.Screen != ScreenFeedback {
			return s, domain.ErrInvalidTransition
		}
		next := s
		next.Screen = ScreenPractice
		next.Feedback = nil
		return next, nil

	case NewLesson:
		next := s
		next.Screen = ScreenSetup
		next.Epoch++
		next.Lesson = nil
		next.Feedback = nil
		next.Stats = domain.NewSessionStats(ev.At)
		next.LastError = ""
		return next, nil

	case RequestReport:
		if s.Overlay.Pending {
			return s, domain.ErrReportPending
		}
		if s.Screen != ScreenFeedback {
			return s, domain.ErrInvalidTransition
		}
		next := s
		next.Overlay = Overlay{Pending: true}
		return next, nil

	case ReportResolved:
		next := s
		next.Overlay = Overlay{Report: ev.Report}
		return next, nil

	case ReportFailed:
		next := s
		next.Overlay = Overlay{Error: errorMessage(ev.Err, domain.ErrReportFailed)}
		return next, nil

	case DismissReport:
		next := s
		next.Overlay = Overlay{Pending: s.Overlay.Pending}
		return next, nil

	case MicrophoneDenied:
		next := s
		next.MicrophoneDenied = true
		return next, nil

	case MicrophoneGranted:
		next := s
		next.MicrophoneDenied = false
		return next, nil
	}

	return s, domain.ErrInvalidTransition
}

// errorMessage keeps internal causes out of what the child sees.
func errorMessage(err error, fallback *domain.Error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return fallback.Msg
}

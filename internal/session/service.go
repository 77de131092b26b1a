package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"

	"github.com/Vovarama1992/memo_coach/internal/domain"
	"github.com/Vovarama1992/memo_coach/internal/ports"
	"github.com/Vovarama1992/memo_coach/internal/speech"
)

type Evaluator interface {
	Evaluate(ctx context.Context, reference string, attempt domain.Attempt, stats domain.SessionStats) (*domain.FeedbackResponse, error)
}

type Reporter interface {
	Generate(ctx context.Context, stats domain.SessionStats, now time.Time) (*domain.ParentReport, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) []byte
}

type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}

const sideEffectTimeout = 15 * time.Second

// Service is the session controller. It serializes every change to one
// session and runs the slow AI calls with the session unlocked.
type Service struct {
	store    Store
	hub      *Hub
	eval     Evaluator
	reporter Reporter
	speech   Synthesizer
	journal  ports.AttemptJournal
	archive  ports.Archive
	notifier Notifier
	log      *logger.ZapLogger

	now         func() time.Time
	locks       sync.Map
	journalTail sync.Map // id -> chan struct{}, закрывается после записи в журнал
	wg          sync.WaitGroup
}

func NewService(
	store Store,
	hub *Hub,
	eval Evaluator,
	reporter Reporter,
	speech Synthesizer,
	journal ports.AttemptJournal,
	archive ports.Archive,
	notifier Notifier,
	log *logger.ZapLogger,
) *Service {
	if hub == nil {
		hub = NewHub()
	}
	return &Service{
		store:    store,
		hub:      hub,
		eval:     eval,
		reporter: reporter,
		speech:   speech,
		journal:  journal,
		archive:  archive,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		State:     NewState(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.info("session created", sess.ID)
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) StartLesson(ctx context.Context, id, title, content string) (*Session, error) {
	return s.apply(ctx, id, StartLesson{Title: title, Content: content, At: s.now()})
}

func (s *Service) Retry(ctx context.Context, id string) (*Session, error) {
	return s.apply(ctx, id, Retry{})
}

func (s *Service) NewLesson(ctx context.Context, id string) (*Session, error) {
	return s.apply(ctx, id, NewLesson{At: s.now()})
}

func (s *Service) DismissReport(ctx context.Context, id string) (*Session, error) {
	return s.apply(ctx, id, DismissReport{})
}

func (s *Service) SetMicrophone(ctx context.Context, id string, granted bool) (*Session, error) {
	if granted {
		return s.apply(ctx, id, MicrophoneGranted{})
	}
	return s.apply(ctx, id, MicrophoneDenied{})
}

// SubmitAttempt evaluates one attempt. On a failed evaluation the session is
// back on the practice screen and the returned error wraps
// domain.ErrEvaluationFailed. A result that arrives after the lesson was
// replaced is dropped.
func (s *Service) SubmitAttempt(ctx context.Context, id string, attempt domain.Attempt) (*Session, error) {
	unlock := s.lock(id)
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		unlock()
		return nil, err
	}
	next, err := Transition(sess.State, SubmitAttempt{Attempt: attempt})
	if err != nil {
		unlock()
		return sess, err
	}
	if err := s.commit(ctx, sess, next); err != nil {
		unlock()
		return nil, err
	}
	epoch := next.Epoch
	lesson := *next.Lesson
	stats := next.Stats
	unlock()

	feedback, evalErr := s.eval.Evaluate(ctx, lesson.Content, attempt, stats)

	unlock = s.lock(id)
	defer unlock()

	// отдельный контекст: запрос мог уже отвалиться, а состояние нужно вернуть
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	cur, err := s.store.Get(saveCtx, id)
	if err != nil {
		return nil, err
	}
	if cur.State.Epoch != epoch || cur.State.Screen != ScreenEvaluating {
		s.info("stale evaluation result dropped", id)
		return cur, nil
	}

	at := s.now()
	var ev Event = EvaluationSucceeded{Feedback: feedback, At: at}
	if evalErr != nil {
		ev = EvaluationFailed{Err: evalErr}
	}
	next, err = Transition(cur.State, ev)
	if err != nil {
		return cur, err
	}
	if err := s.commit(saveCtx, cur, next); err != nil {
		return nil, err
	}

	s.afterEvaluation(id, at, lesson, attempt, feedback, evalErr)

	if evalErr != nil {
		s.warn("evaluation failed", id, evalErr)
		return cur, evalErr
	}
	s.info(fmt.Sprintf("evaluation done: score=%d attempts=%d best=%d",
		feedback.OverallScore, next.Stats.Attempts, next.Stats.BestScore), id)
	return cur, nil
}

// RequestReport starts a parent report in the background. The result lands
// in the overlay whatever screen the session is on by then.
func (s *Service) RequestReport(ctx context.Context, id string) (*Session, error) {
	sess, err := s.apply(ctx, id, RequestReport{})
	if err != nil {
		return sess, err
	}

	stats := sess.State.Stats
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		bg := context.Background()
		report, err := s.reporter.Generate(bg, stats, s.now())

		var ev Event = ReportResolved{Report: report}
		if err != nil {
			ev = ReportFailed{Err: err}
			s.warn("report failed", id, err)
			s.notify(bg, err, "parent report, session "+id)
		}
		if _, err := s.apply(bg, id, ev); err != nil {
			s.warn("report result not stored", id, err)
		}
	}()
	return sess, nil
}

// Speak reads the current feedback summary aloud. Nil audio with a nil error
// means speech is unavailable right now.
func (s *Service) Speak(ctx context.Context, id string) ([]byte, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State.Feedback == nil {
		return nil, domain.ErrNoFeedback
	}
	if s.speech == nil {
		return nil, nil
	}
	return s.speech.Synthesize(ctx, speech.FeedbackSummary(sess.State.Feedback)), nil
}

// Subscribe streams snapshots of one session, starting with the current one.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Snapshot, func(), error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.Subscribe(id, sess.Snapshot())
	return ch, cancel, nil
}

// RunSweeper evicts idle sessions from stores that need it, until ctx ends.
func (s *Service) RunSweeper(ctx context.Context, every, ttl time.Duration) error {
	sw, ok := s.store.(Sweeper)
	if !ok {
		return nil
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed := sw.Sweep(s.now(), ttl)
			for _, id := range removed {
				s.locks.Delete(id)
				s.journalTail.Delete(id)
			}
			if len(removed) > 0 {
				s.info(fmt.Sprintf("swept %d idle sessions", len(removed)), "")
			}
		}
	}
}

// Wait blocks until background report and bookkeeping goroutines finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) apply(ctx context.Context, id string, ev Event) (*Session, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := Transition(sess.State, ev)
	if err != nil {
		return sess, err
	}
	if err := s.commit(ctx, sess, next); err != nil {
		return nil, err
	}
	return sess, nil
}

// commit stores next into sess and publishes it. Caller holds the lock.
func (s *Service) commit(ctx context.Context, sess *Session, next State) error {
	prev := sess.State
	sess.State = next
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		sess.State = prev
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	s.hub.Publish(sess.ID, sess.Snapshot())
	return nil
}

// afterEvaluation runs under the session lock. Journal writes of one session
// are chained so they land in attempt order; the audio upload is not.
func (s *Service) afterEvaluation(id string, at time.Time, lesson domain.Lesson, attempt domain.Attempt, fb *domain.FeedbackResponse, evalErr error) {
	if evalErr != nil && domain.KindOf(evalErr) == domain.KindServiceCall {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer cancel()
			s.notify(ctx, evalErr, "evaluation, session "+id)
		}()
	}

	if s.journal == nil && s.archive == nil {
		return
	}

	var prev chan struct{}
	if p, ok := s.journalTail.Load(id); ok {
		prev = p.(chan struct{})
	}
	done := make(chan struct{})
	s.journalTail.Store(id, done)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		entry := ports.JournalEntry{
			SessionID:   id,
			LessonTitle: lesson.Title,
			Mode:        attempt.Mode(),
			Failed:      evalErr != nil,
			CreatedAt:   at,
		}
		if fb != nil {
			score := fb.OverallScore
			entry.Score = &score
			entry.Transcription = fb.Transcription
		}

		if s.archive != nil && attempt.HasAudio() {
			url, err := s.archive.SaveAttemptAudio(ctx, id, attempt.Audio, attempt.AudioMIME)
			if err != nil {
				s.warn("archive audio failed", id, err)
			} else {
				entry.AudioURL = &url
			}
		}

		if prev != nil {
			<-prev
		}
		if s.journal != nil {
			rctx, rcancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer rcancel()
			if err := s.journal.Record(rctx, entry); err != nil {
				s.warn("journal record failed", id, err)
			}
		}
	}()
}

func (s *Service) notify(ctx context.Context, err error, details string) {
	if s.notifier == nil {
		return
	}
	if nerr := s.notifier.Notify(ctx, err, details); nerr != nil {
		s.warn("ops notification failed", "", nerr)
	}
}

func (s *Service) lock(id string) func() {
	m, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) info(msg, id string) {
	if s.log == nil {
		return
	}
	if id != "" {
		msg += " session=" + id
	}
	s.log.Log(logger.LogEntry{Level: "info", Message: msg, Service: "session"})
}

func (s *Service) warn(msg, id string, err error) {
	if s.log == nil {
		return
	}
	if id != "" {
		msg += " session=" + id
	}
	level := "warn"
	if domain.KindOf(err) == "" {
		level = "error"
	}
	s.log.Log(logger.LogEntry{Level: level, Message: msg, Service: "session", Error: err})
}

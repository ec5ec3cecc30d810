// Package session drives a single game run: it walks the round list,
// scores each selection and emits a RunSummary when the run ends.
//
// An Engine has exactly one owner and is not safe for concurrent use.
// Invalid calls are ignored rather than reported as errors, so callers
// driven by UI events never need to guard against double taps.
package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/scoring"
)

// Config describes the session to run. Rounds must be non-empty; an empty
// round list yields a session in which every selection is ignored.
type Config struct {
	SessionID      string
	GameID         models.GameID
	Mode           models.GameMode
	Difficulty     models.Difficulty
	Rounds         []models.Round
	TargetDuration time.Duration
	Metadata       map[string]any
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithOnComplete registers the callback invoked on every End call.
func WithOnComplete(fn func(models.RunSummary)) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

type Engine struct {
	cfg         Config
	now         func() time.Time
	onComplete  func(models.RunSummary)
	generatedID bool

	state models.SessionState

	combo         int
	correctCount  int
	attempts      int
	responseTotal time.Duration
	responseStart time.Time
	startedAt     time.Time
	endedAt       time.Time
}

// New builds an engine in the tutorial state.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cfg.SessionID == "" {
		e.cfg.SessionID = uuid.NewString()
		e.generatedID = true
	}
	e.cfg.Rounds = append([]models.Round(nil), cfg.Rounds...)
	e.state = e.initialState()
	return e
}

func (e *Engine) ID() string { return e.cfg.SessionID }

func (e *Engine) GameID() models.GameID { return e.cfg.GameID }

func (e *Engine) Status() models.SessionStatus { return e.state.Status }

// State returns a snapshot safe for the caller to keep.
func (e *Engine) State() models.SessionState {
	s := e.state
	s.Rounds = append([]models.Round(nil), e.state.Rounds...)
	if e.state.SelectedIndex != nil {
		idx := *e.state.SelectedIndex
		s.SelectedIndex = &idx
	}
	s.ElapsedMs = e.elapsed().Milliseconds()
	return s
}

// Start moves the session into play. Calling it again restarts the run
// from the first round with all counters cleared.
func (e *Engine) Start() {
	now := e.now()
	e.clearCounters()
	e.state.Status = models.StatusActive
	e.state.RoundIndex = 0
	e.state.Score = 0
	e.state.Streak = 0
	e.state.Accuracy = 0
	e.state.SelectedIndex = nil
	e.startedAt = now
	e.endedAt = time.Time{}
	e.responseStart = now
}

// SelectOption scores the player's pick for the current round. It reports
// false and changes nothing when the session is not active, the round
// already has a selection, or index is outside the round's options.
func (e *Engine) SelectOption(index int) (models.RoundOutcome, bool) {
	if e.state.Status != models.StatusActive || e.state.SelectedIndex != nil {
		return models.RoundOutcome{}, false
	}
	round, ok := e.state.CurrentRound()
	if !ok || !round.HasOption(index) {
		return models.RoundOutcome{}, false
	}

	response := e.cfg.TargetDuration
	if !e.responseStart.IsZero() {
		response = e.now().Sub(e.responseStart)
	}
	correct := index == round.CorrectIndex

	res := scoring.Score(scoring.Input{
		Correct:      correct,
		ResponseTime: response,
		TargetTime:   e.cfg.TargetDuration,
		Difficulty:   int(e.cfg.Difficulty),
		Combo:        e.combo,
	})

	e.combo = res.Combo
	e.attempts++
	e.responseTotal += response
	if correct {
		e.correctCount++
		e.state.Streak++
	} else {
		e.state.Streak = 0
	}
	e.state.Score = max(0, e.state.Score+res.Delta)
	e.state.Accuracy = float64(e.correctCount) / float64(e.attempts)
	selected := index
	e.state.SelectedIndex = &selected

	return models.RoundOutcome{
		RoundIndex:     e.state.RoundIndex,
		SelectedIndex:  index,
		Correct:        correct,
		Delta:          res.Delta,
		Combo:          res.Combo,
		ResponseTimeMs: response.Milliseconds(),
	}, true
}

// NextRound advances to the following round and restarts the response
// timer. It reports false on the last round.
func (e *Engine) NextRound() bool {
	if e.state.RoundIndex >= len(e.state.Rounds)-1 {
		return false
	}
	e.state.RoundIndex++
	e.state.SelectedIndex = nil
	e.responseStart = e.now()
	return true
}

// End closes the session from any state, builds the run summary and hands
// it to the completion callback. Every call emits exactly one summary.
func (e *Engine) End() models.RunSummary {
	now := e.now()
	if e.state.Status == models.StatusActive {
		e.endedAt = now
	}
	elapsed := e.elapsed()
	e.state.Status = models.StatusSummary

	summary := models.RunSummary{
		SessionID:         e.cfg.SessionID,
		GameID:            e.cfg.GameID,
		StartedAt:         now.Add(-elapsed),
		CompletedAt:       now,
		Difficulty:        e.cfg.Difficulty,
		Score:             e.state.Score,
		Accuracy:          e.state.Accuracy,
		TotalRounds:       len(e.state.Rounds),
		Attempts:          e.attempts,
		CorrectCount:      e.correctCount,
		Streak:            e.state.Streak,
		AverageResponseMs: e.averageResponseMs(),
		Metadata:          e.metadata(),
	}

	if e.onComplete != nil {
		e.onComplete(summary)
	}
	return summary
}

// Reset returns the session to the tutorial state with all counters
// cleared. The round list is kept unless a replacement is supplied.
// Generated session identifiers are rotated so every run stays distinct.
func (e *Engine) Reset(rounds ...[]models.Round) {
	if len(rounds) > 0 && rounds[0] != nil {
		e.cfg.Rounds = append([]models.Round(nil), rounds[0]...)
	}
	if e.generatedID {
		e.cfg.SessionID = uuid.NewString()
	}
	e.clearCounters()
	e.startedAt = time.Time{}
	e.endedAt = time.Time{}
	e.state = e.initialState()
}

func (e *Engine) initialState() models.SessionState {
	return models.SessionState{
		SessionID:  e.cfg.SessionID,
		GameID:     e.cfg.GameID,
		Status:     models.StatusTutorial,
		Difficulty: e.cfg.Difficulty,
		Rounds:     e.cfg.Rounds,
	}
}

func (e *Engine) clearCounters() {
	e.combo = 0
	e.correctCount = 0
	e.attempts = 0
	e.responseTotal = 0
	e.responseStart = time.Time{}
}

func (e *Engine) elapsed() time.Duration {
	if e.startedAt.IsZero() {
		return 0
	}
	end := e.endedAt
	if end.IsZero() {
		end = e.now()
	}
	return max(0, end.Sub(e.startedAt))
}

func (e *Engine) averageResponseMs() float64 {
	if e.attempts == 0 {
		return 0
	}
	return float64(e.responseTotal) / float64(time.Millisecond) / float64(e.attempts)
}

func (e *Engine) metadata() map[string]any {
	md := make(map[string]any, len(e.cfg.Metadata)+1)
	if e.cfg.Mode != "" {
		md["mode"] = string(e.cfg.Mode)
	}
	maps.Copy(md, e.cfg.Metadata)
	return md
}

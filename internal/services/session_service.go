package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/intuition/internal/difficulty"
	"github.com/vytor/intuition/internal/errors"
	"github.com/vytor/intuition/internal/games"
	"github.com/vytor/intuition/internal/jobs"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
	"github.com/vytor/intuition/internal/session"
)

// SelectResult reports whether a selection was taken and, if so, its outcome.
type SelectResult struct {
	Accepted bool                 `json:"accepted"`
	Outcome  *models.RoundOutcome `json:"outcome,omitempty"`
	State    models.SessionState  `json:"state"`
}

// NextResult reports whether the session moved to another round.
type NextResult struct {
	Advanced bool                `json:"advanced"`
	State    models.SessionState `json:"state"`
}

// SessionService keeps live game sessions in memory and records each run
// when its session ends.
type SessionService interface {
	CreateSession(ctx context.Context, profileID int64, gameID models.GameID) (models.SessionState, error)
	GetSession(ctx context.Context, profileID int64, sessionID string) (models.SessionState, error)
	StartSession(ctx context.Context, profileID int64, sessionID string) (models.SessionState, error)
	SelectOption(ctx context.Context, profileID int64, sessionID string, index int) (SelectResult, error)
	NextRound(ctx context.Context, profileID int64, sessionID string) (NextResult, error)
	EndSession(ctx context.Context, profileID int64, sessionID string) (*models.RunResult, error)
	ResetSession(ctx context.Context, profileID int64, sessionID string) (models.SessionState, error)
	ActiveSessions() int
	Sweep() int
}

type SessionServiceConfig struct {
	TTL       time.Duration
	MaxActive int
}

type SessionOption func(*sessionService)

// WithSessionClock replaces time.Now for both the service and its engines.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.now = now
	}
}

type activeSession struct {
	mu        sync.Mutex
	engine    *session.Engine
	profileID int64
	meta      models.GameMeta
	lastUsed  time.Time
	result    *models.RunResult
	// log belongs to the request currently holding mu.
	log *logger.Logger
}

type sessionService struct {
	mu       sync.Mutex
	sessions map[string]*activeSession

	// difficultyMu serialises the stored difficulty read-modify-write so
	// runs of the same game ending together each register a step.
	difficultyMu sync.Mutex

	cfg            SessionServiceConfig
	now            func() time.Time
	runRepo        repository.RunRepository
	difficultyRepo repository.DifficultyRepository
	progress       ProgressService
	jobQueue       jobs.JobQueue
}

// NewSessionService creates a new SessionService
func NewSessionService(
	cfg SessionServiceConfig,
	runRepo repository.RunRepository,
	difficultyRepo repository.DifficultyRepository,
	progress ProgressService,
	jobQueue jobs.JobQueue,
	opts ...SessionOption,
) SessionService {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.MaxActive <= 0 {
		cfg.MaxActive = 1000
	}
	s := &sessionService{
		sessions:       make(map[string]*activeSession),
		cfg:            cfg,
		now:            time.Now,
		runRepo:        runRepo,
		difficultyRepo: difficultyRepo,
		progress:       progress,
		jobQueue:       jobQueue,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sessionService) CreateSession(ctx context.Context, profileID int64, gameID models.GameID) (models.SessionState, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating session: profile_id=%d, game_id=%s", profileID, gameID)

	meta, ok := games.Lookup(gameID)
	if !ok {
		return models.SessionState{}, errors.NewNotFoundError("game", gameID)
	}

	level := meta.InitialDifficulty
	stored, err := s.difficultyRepo.Get(ctx, profileID, gameID)
	if err != nil {
		log.Error("failed to load difficulty: %v", err)
		return models.SessionState{}, errors.NewInternalError(err)
	}
	if stored != nil {
		level = difficulty.Clamp(int(stored.Current))
	}

	a := &activeSession{profileID: profileID, meta: meta, log: log}
	a.engine = session.New(session.Config{
		GameID:         gameID,
		Mode:           meta.Mode,
		Difficulty:     level,
		Rounds:         games.Rounds(gameID),
		TargetDuration: meta.TargetDuration,
		Metadata:       map[string]any{"title": meta.Title},
	}, session.WithClock(s.now), session.WithOnComplete(s.onComplete(a)))

	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	if len(s.sessions) >= s.cfg.MaxActive {
		s.evictOldestLocked()
	}
	a.lastUsed = now
	s.sessions[a.engine.ID()] = a
	s.mu.Unlock()

	log.Info("session created: id=%s, game_id=%s, difficulty=%d", a.engine.ID(), gameID, level)
	return a.engine.State(), nil
}

// onComplete runs under a.mu, inside the request that ended the session.
func (s *sessionService) onComplete(a *activeSession) func(models.RunSummary) {
	return func(run models.RunSummary) {
		run.ProfileID = a.profileID
		if err := s.jobQueue.EnqueueRunCompleted(run); err != nil {
			a.log.Warn("failed to enqueue run event for session %s: %v", run.SessionID, err)
		}
	}
}

func (s *sessionService) GetSession(ctx context.Context, profileID int64, sessionID string) (models.SessionState, error) {
	a, err := s.acquire(ctx, profileID, sessionID)
	if err != nil {
		return models.SessionState{}, err
	}
	defer a.mu.Unlock()
	return a.engine.State(), nil
}

// StartSession begins play. Starting a finished session opens a new run
// under a fresh session id.
func (s *sessionService) StartSession(ctx context.Context, profileID int64, sessionID string) (models.SessionState, error) {
	a, err := s.acquire(ctx, profileID, sessionID)
	if err != nil {
		return models.SessionState{}, err
	}
	defer a.mu.Unlock()

	if a.engine.Status() == models.StatusSummary {
		s.resetLocked(ctx, a)
	}
	a.engine.Start()
	logger.FromContext(ctx).Debug("session started: id=%s", a.engine.ID())
	return a.engine.State(), nil
}

func (s *sessionService) SelectOption(ctx context.Context, profileID int64, sessionID string, index int) (SelectResult, error) {
	a, err := s.acquire(ctx, profileID, sessionID)
	if err != nil {
		return SelectResult{}, err
	}
	defer a.mu.Unlock()

	outcome, ok := a.engine.SelectOption(index)
	res := SelectResult{Accepted: ok, State: a.engine.State()}
	if ok {
		res.Outcome = &outcome
		logger.FromContext(ctx).Debug("selection scored: id=%s, round=%d, correct=%t, delta=%d",
			sessionID, outcome.RoundIndex, outcome.Correct, outcome.Delta)
	}
	return res, nil
}

func (s *sessionService) NextRound(ctx context.Context, profileID int64, sessionID string) (NextResult, error) {
	a, err := s.acquire(ctx, profileID, sessionID)
	if err != nil {
		return NextResult{}, err
	}
	defer a.mu.Unlock()

	advanced := a.engine.NextRound()
	return NextResult{Advanced: advanced, State: a.engine.State()}, nil
}

// EndSession closes the session and records the run. The run is stored and
// the difficulty adjusted once; later calls return the recorded result.
func (s *sessionService) EndSession(ctx context.Context, profileID int64, sessionID string) (*models.RunResult, error) {
	log := logger.FromContext(ctx)

	a, err := s.acquire(ctx, profileID, sessionID)
	if err != nil {
		return nil, err
	}
	defer a.mu.Unlock()

	summary := a.engine.End()
	if a.result != nil {
		log.Debug("session %s already recorded as run %d", sessionID, a.result.Summary.ID)
		res := *a.result
		return &res, nil
	}

	summary.ProfileID = a.profileID
	id, err := s.runRepo.Insert(ctx, summary)
	if err != nil {
		log.Error("failed to record run for session %s: %v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}
	summary.ID = id

	result := &models.RunResult{Summary: summary, NextDifficulty: summary.Difficulty}
	a.result = result

	if summary.Attempts > 0 {
		next, err := s.adjustDifficulty(ctx, a, summary)
		if err != nil {
			log.Warn("run %d recorded without difficulty update: %v", id, err)
		} else {
			result.NextDifficulty = next
		}
	}

	index, err := s.progress.IntuitionIndex(ctx, a.profileID)
	if err != nil {
		log.Warn("could not compute intuition index after run %d: %v", id, err)
	}
	result.IntuitionIndex = index

	log.Info("run recorded: id=%d, game_id=%s, score=%d, accuracy=%.2f, next_difficulty=%d",
		id, summary.GameID, summary.Score, summary.Accuracy, result.NextDifficulty)
	res := *result
	return &res, nil
}

func (s *sessionService) adjustDifficulty(ctx context.Context, a *activeSession, run models.RunSummary) (models.Difficulty, error) {
	s.difficultyMu.Lock()
	defer s.difficultyMu.Unlock()

	target := a.meta.PerRoundTarget(run.TotalRounds)

	stored, err := s.difficultyRepo.Get(ctx, a.profileID, run.GameID)
	if err != nil {
		return 0, err
	}
	var mgr *difficulty.Manager
	if stored != nil {
		mgr = difficulty.Restore(*stored, a.meta.InitialDifficulty, target)
	} else {
		mgr = difficulty.NewManager(run.Difficulty, target)
	}

	next := mgr.RegisterRun(run.Accuracy, run.AverageResponseMs)
	if err := s.difficultyRepo.Save(ctx, mgr.State(a.profileID, run.GameID)); err != nil {
		return 0, err
	}
	return next, nil
}

// ResetSession returns the session to its tutorial state under a new id.
func (s *sessionService) ResetSession(ctx context.Context, profileID int64, sessionID string) (models.SessionState, error) {
	a, err := s.acquire(ctx, profileID, sessionID)
	if err != nil {
		return models.SessionState{}, err
	}
	defer a.mu.Unlock()

	s.resetLocked(ctx, a)
	return a.engine.State(), nil
}

// resetLocked resets the engine and re-registers it under its rotated id.
// The caller holds a.mu.
func (s *sessionService) resetLocked(ctx context.Context, a *activeSession) {
	oldID := a.engine.ID()
	a.engine.Reset()
	a.result = nil
	newID := a.engine.ID()

	s.mu.Lock()
	if s.sessions[oldID] == a {
		delete(s.sessions, oldID)
	}
	s.sessions[newID] = a
	s.mu.Unlock()

	logger.FromContext(ctx).Debug("session reset: old_id=%s, new_id=%s", oldID, newID)
}

func (s *sessionService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the configured TTL and returns
// how many were removed.
func (s *sessionService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

// acquire looks up the session and locks it for the calling request. The
// caller unlocks a.mu.
func (s *sessionService) acquire(ctx context.Context, profileID int64, sessionID string) (*activeSession, error) {
	a, err := s.lookup(ctx, profileID, sessionID)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.log = logger.FromContext(ctx)
	return a, nil
}

func (s *sessionService) lookup(ctx context.Context, profileID int64, sessionID string) (*activeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a, ok := s.sessions[sessionID]
	if ok && now.Sub(a.lastUsed) > s.cfg.TTL {
		delete(s.sessions, sessionID)
		ok = false
	}
	// Sessions of other profiles are reported as missing.
	if !ok || a.profileID != profileID {
		logger.FromContext(ctx).Debug("session not found: id=%s, profile_id=%d", sessionID, profileID)
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	a.lastUsed = now
	return a, nil
}

func (s *sessionService) sweepLocked(now time.Time) int {
	removed := 0
	for id, a := range s.sessions {
		if now.Sub(a.lastUsed) > s.cfg.TTL {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *sessionService) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, a := range s.sessions {
		if oldestID == "" || a.lastUsed.Before(oldest) {
			oldestID, oldest = id, a.lastUsed
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

package services

import (
	"cmp"
	"context"
	"slices"

	"github.com/vytor/intuition/internal/errors"
	"github.com/vytor/intuition/internal/games"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/progress"
	"github.com/vytor/intuition/internal/repository"
)

const (
	DefaultRunPageSize = 20
	MaxRunPageSize     = 100
)

// RunPageSize returns the page size ListRuns applies for a requested limit:
// zero selects the default and anything above the maximum is capped.
func RunPageSize(limit int) int {
	switch {
	case limit == 0:
		return DefaultRunPageSize
	case limit > MaxRunPageSize:
		return MaxRunPageSize
	}
	return limit
}

// ProgressService answers run history and intuition index queries from
// persisted runs.
type ProgressService interface {
	ListRuns(ctx context.Context, filter models.RunFilter) ([]models.RunSummary, int, error)
	Snapshot(ctx context.Context, profileID int64) (models.ProgressSnapshot, error)
	IntuitionIndex(ctx context.Context, profileID int64) (int, error)
}

type progressService struct {
	runRepo        repository.RunRepository
	difficultyRepo repository.DifficultyRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(runRepo repository.RunRepository, difficultyRepo repository.DifficultyRepository) ProgressService {
	return &progressService{runRepo: runRepo, difficultyRepo: difficultyRepo}
}

func (s *progressService) ListRuns(ctx context.Context, filter models.RunFilter) ([]models.RunSummary, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing runs: profile_id=%d, game_id=%s", filter.ProfileID, filter.GameID)

	if filter.GameID != "" {
		if _, ok := games.Lookup(filter.GameID); !ok {
			return nil, 0, errors.NewValidationError("game_id", "unknown game")
		}
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, 0, errors.NewValidationError("limit", "limit and offset cannot be negative")
	}
	filter.Limit = RunPageSize(filter.Limit)

	runs, err := s.runRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list runs: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.runRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count runs: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return runs, total, nil
}

// Snapshot rebuilds the profile's progress tracker from its most recent runs
// and annotates each game with its current difficulty.
func (s *progressService) Snapshot(ctx context.Context, profileID int64) (models.ProgressSnapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("building progress snapshot: profile_id=%d", profileID)

	tracker, err := s.tracker(ctx, profileID)
	if err != nil {
		return models.ProgressSnapshot{}, err
	}
	snap := tracker.Snapshot()

	levels, err := s.difficultyRepo.List(ctx, profileID)
	if err != nil {
		log.Error("failed to list difficulty levels: %v", err)
		return models.ProgressSnapshot{}, errors.NewInternalError(err)
	}
	current := make(map[models.GameID]models.Difficulty, len(levels))
	for _, l := range levels {
		current[l.GameID] = l.Current
	}
	for i := range snap.Games {
		snap.Games[i].Difficulty = current[snap.Games[i].GameID]
	}

	// Newest first for display.
	slices.Reverse(snap.RecentRuns)
	if snap.RecentRuns == nil {
		snap.RecentRuns = []models.RunSummary{}
	}
	if snap.Games == nil {
		snap.Games = []models.GameProgress{}
	}
	return snap, nil
}

func (s *progressService) IntuitionIndex(ctx context.Context, profileID int64) (int, error) {
	tracker, err := s.tracker(ctx, profileID)
	if err != nil {
		return 0, err
	}
	return tracker.IntuitionIndex(), nil
}

// tracker replays the runs that can still be inside a tracker window: the
// overall most recent ones plus the most recent of every game.
func (s *progressService) tracker(ctx context.Context, profileID int64) (*progress.Tracker, error) {
	log := logger.FromContext(ctx)

	recent, err := s.runRepo.List(ctx, models.RunFilter{ProfileID: profileID, Limit: progress.MaxRecentRuns})
	if err != nil {
		log.Error("failed to load recent runs: %v", err)
		return nil, errors.NewInternalError(err)
	}

	seen := make(map[int64]bool, len(recent))
	runs := make([]models.RunSummary, 0, len(recent))
	add := func(batch []models.RunSummary) {
		for _, r := range batch {
			if !seen[r.ID] {
				seen[r.ID] = true
				runs = append(runs, r)
			}
		}
	}
	add(recent)

	for _, meta := range games.All() {
		gameRuns, err := s.runRepo.List(ctx, models.RunFilter{
			ProfileID: profileID,
			GameID:    meta.ID,
			Limit:     progress.MaxRunsPerGame,
		})
		if err != nil {
			log.Error("failed to load runs for game %s: %v", meta.ID, err)
			return nil, errors.NewInternalError(err)
		}
		add(gameRuns)
	}

	slices.SortStableFunc(runs, func(a, b models.RunSummary) int {
		if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	tracker := progress.NewTracker()
	for _, r := range runs {
		tracker.RecordRun(r)
	}
	log.Debug("replayed %d runs into tracker", len(runs))
	return tracker, nil
}

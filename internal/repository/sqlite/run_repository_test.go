package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
	"github.com/vytor/intuition/internal/repository/sqlite"
	"github.com/vytor/intuition/internal/testutil"
)

type RunRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.RunRepository
	profileID int64
	base      time.Time
}

func (s *RunRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewRunRepository(s.db)
	s.profileID = testutil.MustCreateProfile(s.T(), s.db, "runner")
	s.base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RunRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *RunRepositorySuite) insert(gameID models.GameID, score int, completed time.Time) int64 {
	run := testutil.Run(s.profileID, gameID, score)
	run.StartedAt = completed.Add(-20 * time.Second)
	run.CompletedAt = completed
	id, err := s.repo.Insert(context.Background(), run)
	s.Require().NoError(err)
	return id
}

func (s *RunRepositorySuite) TestInsertAndList() {
	ctx := context.Background()

	run := testutil.Run(s.profileID, models.GamePatternCompletion, 429)
	run.StartedAt = s.base
	run.CompletedAt = s.base.Add(18 * time.Second)
	run.Metadata = map[string]any{"mode": "timed"}

	id, err := s.repo.Insert(ctx, run)
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	runs, err := s.repo.List(ctx, models.RunFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Require().Len(runs, 1)

	got := runs[0]
	s.Assert().Equal(id, got.ID)
	s.Assert().Equal(run.SessionID, got.SessionID)
	s.Assert().Equal(models.GamePatternCompletion, got.GameID)
	s.Assert().Equal(models.Difficulty(3), got.Difficulty)
	s.Assert().Equal(429, got.Score)
	s.Assert().InDelta(1.0, got.Accuracy, 1e-9)
	s.Assert().Equal(3, got.Attempts)
	s.Assert().InDelta(6000.0, got.AverageResponseMs, 1e-9)
	s.Assert().Equal("timed", got.Metadata["mode"])
	s.Assert().True(run.CompletedAt.Equal(got.CompletedAt))
}

func (s *RunRepositorySuite) TestInsert_DuplicateSessionRejected() {
	ctx := context.Background()
	run := testutil.Run(s.profileID, models.GameWordSprint, 100)
	run.StartedAt, run.CompletedAt = s.base, s.base

	_, err := s.repo.Insert(ctx, run)
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, run)
	s.Assert().Error(err)
}

func (s *RunRepositorySuite) TestList_NewestFirstWithPagination() {
	ctx := context.Background()
	for i := range 5 {
		s.insert(models.GameWordSprint, 100+i, s.base.Add(time.Duration(i)*time.Minute))
	}

	runs, err := s.repo.List(ctx, models.RunFilter{ProfileID: s.profileID, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Assert().Equal(104, runs[0].Score)
	s.Assert().Equal(103, runs[1].Score)

	runs, err = s.repo.List(ctx, models.RunFilter{ProfileID: s.profileID, Limit: 2, Offset: 4})
	s.Require().NoError(err)
	s.Require().Len(runs, 1)
	s.Assert().Equal(100, runs[0].Score)

	runs, err = s.repo.List(ctx, models.RunFilter{ProfileID: s.profileID, OrderDir: "ASC", Limit: 1})
	s.Require().NoError(err)
	s.Assert().Equal(100, runs[0].Score)
}

func (s *RunRepositorySuite) TestListAndCount_FilterByGameAndSince() {
	ctx := context.Background()
	s.insert(models.GameWordSprint, 100, s.base)
	s.insert(models.GameAnomalyScout, 200, s.base.Add(time.Hour))
	s.insert(models.GameAnomalyScout, 300, s.base.Add(2*time.Hour))

	count, err := s.repo.Count(ctx, models.RunFilter{ProfileID: s.profileID, GameID: models.GameAnomalyScout})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	since := s.base.Add(90 * time.Minute)
	runs, err := s.repo.List(ctx, models.RunFilter{ProfileID: s.profileID, Since: &since})
	s.Require().NoError(err)
	s.Require().Len(runs, 1)
	s.Assert().Equal(300, runs[0].Score)
}

func (s *RunRepositorySuite) TestList_ScopedToProfile() {
	ctx := context.Background()
	other := testutil.MustCreateProfile(s.T(), s.db, "someone-else")
	s.insert(models.GameWordSprint, 100, s.base)

	runs, err := s.repo.List(ctx, models.RunFilter{ProfileID: other})
	s.Require().NoError(err)
	s.Assert().Empty(runs)
}

func TestRunRepositorySuite(t *testing.T) {
	suite.Run(t, new(RunRepositorySuite))
}

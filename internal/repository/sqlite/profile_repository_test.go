package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
	"github.com/vytor/intuition/internal/repository/sqlite"
	"github.com/vytor/intuition/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestUpsert_IsIdempotentByUsername() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "ada")
	s.Require().NoError(err)
	s.Assert().Greater(first.ID, int64(0))
	s.Assert().Equal("ada", first.Username)
	s.Assert().False(first.CreatedAt.IsZero())

	second, err := s.repo.Upsert(ctx, "ada")
	s.Require().NoError(err)
	s.Assert().Equal(first.ID, second.ID)

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(profiles, 1)
}

func (s *ProfileRepositorySuite) TestGet_NotFound() {
	p, err := s.repo.Get(context.Background(), 99999)
	s.Assert().NoError(err)
	s.Assert().Nil(p)
}

func (s *ProfileRepositorySuite) TestUpdate_OnlyTouchesProvidedFields() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "grace")
	s.Require().NoError(err)

	updated, err := s.repo.Update(ctx, p.ID, models.ProfileUpdate{
		DisplayName: testutil.Ptr("Grace"),
		Age:         testutil.Ptr(34),
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Assert().Equal("Grace", *updated.DisplayName)
	s.Assert().Equal(34, *updated.Age)
	s.Assert().Nil(updated.Persona)

	updated, err = s.repo.Update(ctx, p.ID, models.ProfileUpdate{Persona: testutil.Ptr("analyst")})
	s.Require().NoError(err)
	s.Assert().Equal("Grace", *updated.DisplayName)
	s.Assert().Equal(34, *updated.Age)
	s.Assert().Equal("analyst", *updated.Persona)
}

func (s *ProfileRepositorySuite) TestUpdate_EmptyUpdateReturnsProfile() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "linus")
	s.Require().NoError(err)

	got, err := s.repo.Update(ctx, p.ID, models.ProfileUpdate{})
	s.Require().NoError(err)
	s.Assert().Equal(p.ID, got.ID)
}

func (s *ProfileRepositorySuite) TestUpdate_NotFound() {
	got, err := s.repo.Update(context.Background(), 4242, models.ProfileUpdate{Age: testutil.Ptr(20)})
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProfileRepositorySuite) TestDelete_RemovesRunsAndDifficulty() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "margaret")
	s.Require().NoError(err)

	runs := sqlite.NewRunRepository(s.db)
	_, err = runs.Insert(ctx, testutil.Run(p.ID, models.GameWordSprint, 500))
	s.Require().NoError(err)

	levels := sqlite.NewDifficultyRepository(s.db)
	s.Require().NoError(levels.Save(ctx, models.DifficultyState{
		ProfileID: p.ID, GameID: models.GameWordSprint, Current: 4, History: []models.Difficulty{3, 4},
	}))

	s.Require().NoError(s.repo.Delete(ctx, p.ID))

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Assert().Nil(got)

	count, err := runs.Count(ctx, models.RunFilter{ProfileID: p.ID})
	s.Require().NoError(err)
	s.Assert().Zero(count)

	state, err := levels.Get(ctx, p.ID, models.GameWordSprint)
	s.Require().NoError(err)
	s.Assert().Nil(state)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}

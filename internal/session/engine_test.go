package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/session"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func threeRounds() []models.Round {
	return []models.Round{
		{Prompt: "one", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 2},
		{Prompt: "two", Options: []string{"X", "Y", "Z"}, CorrectIndex: 1},
		{Prompt: "three", Options: []string{"L", "R"}, CorrectIndex: 0},
	}
}

func newEngine(t *testing.T, clock *fakeClock, onComplete func(models.RunSummary)) *session.Engine {
	t.Helper()
	return session.New(session.Config{
		GameID:         models.GamePatternCompletion,
		Mode:           models.ModeTimed,
		Difficulty:     3,
		Rounds:         threeRounds(),
		TargetDuration: 6 * time.Second,
		Metadata:       map[string]any{"source": "test"},
	}, session.WithClock(clock.Now), session.WithOnComplete(onComplete))
}

func TestEngine_InitialState(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	state := e.State()

	assert.Equal(t, models.StatusTutorial, state.Status)
	assert.Equal(t, 0, state.RoundIndex)
	assert.Equal(t, 0, state.Score)
	assert.Nil(t, state.SelectedIndex)
	assert.Len(t, state.Rounds, 3)
	assert.NotEmpty(t, e.ID())
	assert.Equal(t, e.ID(), state.SessionID)
}

func TestEngine_UsesSuppliedSessionID(t *testing.T) {
	e := session.New(session.Config{SessionID: "abc", Rounds: threeRounds()})
	assert.Equal(t, "abc", e.ID())

	e.Reset()
	assert.Equal(t, "abc", e.ID(), "caller supplied ids are kept across resets")
}

func TestEngine_SelectBeforeStartIsIgnored(t *testing.T) {
	e := newEngine(t, newClock(), nil)

	_, ok := e.SelectOption(2)

	assert.False(t, ok)
	assert.Equal(t, models.StatusTutorial, e.State().Status)
	assert.Nil(t, e.State().SelectedIndex)
}

func TestEngine_FullCorrectRunAtTargetTime(t *testing.T) {
	clock := newClock()
	var summaries []models.RunSummary
	e := newEngine(t, clock, func(s models.RunSummary) { summaries = append(summaries, s) })

	e.Start()
	for i, round := range threeRounds() {
		clock.Advance(6 * time.Second)
		outcome, ok := e.SelectOption(round.CorrectIndex)
		require.True(t, ok)
		assert.True(t, outcome.Correct)
		assert.Equal(t, i+1, outcome.Combo)
		if i < 2 {
			require.True(t, e.NextRound())
		}
	}
	summary := e.End()

	state := e.State()
	assert.Equal(t, models.StatusSummary, state.Status)
	assert.Equal(t, 3, state.Streak)
	assert.Equal(t, 1.0, state.Accuracy)
	// 135, then 135+8, then 135+16
	assert.Equal(t, 429, state.Score)

	require.Len(t, summaries, 1)
	assert.Equal(t, summary, summaries[0])
	assert.Equal(t, 3, summary.TotalRounds)
	assert.Equal(t, 3, summary.Attempts)
	assert.Equal(t, 3, summary.CorrectCount)
	assert.Equal(t, 429, summary.Score)
	assert.Equal(t, models.Difficulty(3), summary.Difficulty)
	assert.InDelta(t, 6000, summary.AverageResponseMs, 1e-9)
	assert.Equal(t, clock.Now(), summary.CompletedAt)
	assert.Equal(t, clock.Now().Add(-18*time.Second), summary.StartedAt)
	assert.Equal(t, "timed", summary.Metadata["mode"])
	assert.Equal(t, "test", summary.Metadata["source"])
	assert.Equal(t, e.ID(), summary.SessionID)
}

func TestEngine_SecondSelectionIsIgnored(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()

	_, ok := e.SelectOption(0)
	require.True(t, ok)
	scoreAfterFirst := e.State().Score

	_, ok = e.SelectOption(2)
	assert.False(t, ok)
	assert.Equal(t, scoreAfterFirst, e.State().Score)
	assert.Equal(t, 0, *e.State().SelectedIndex)
}

func TestEngine_OutOfRangeSelectionIsIgnored(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	e.Start()

	_, ok := e.SelectOption(-1)
	assert.False(t, ok)
	_, ok = e.SelectOption(4)
	assert.False(t, ok)
	assert.Nil(t, e.State().SelectedIndex)
}

func TestEngine_ScoreNeverNegative(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()

	outcome, ok := e.SelectOption(0)
	require.True(t, ok)
	assert.False(t, outcome.Correct)
	assert.Equal(t, -15, outcome.Delta)
	assert.Equal(t, 0, e.State().Score)
	assert.Equal(t, 0, e.State().Streak)
}

func TestEngine_AccuracyCountsAttemptsNotRounds(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()

	_, ok := e.SelectOption(2)
	require.True(t, ok)
	require.True(t, e.NextRound())
	_, ok = e.SelectOption(0)
	require.True(t, ok)

	summary := e.End()
	assert.InDelta(t, 0.5, summary.Accuracy, 1e-9)
	assert.Equal(t, 2, summary.Attempts)
	assert.Equal(t, 3, summary.TotalRounds)
	assert.Equal(t, 0, summary.Streak)
}

func TestEngine_StreakResetsOnMiss(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()

	e.SelectOption(2)
	e.NextRound()
	e.SelectOption(0)
	assert.Equal(t, 0, e.State().Streak)
	e.NextRound()
	outcome, _ := e.SelectOption(0)

	assert.Equal(t, 1, e.State().Streak)
	assert.Equal(t, 1, outcome.Combo)
}

func TestEngine_NextRoundStopsAtLastRound(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	e.Start()

	assert.True(t, e.NextRound())
	assert.True(t, e.NextRound())
	assert.False(t, e.NextRound())
	assert.Equal(t, 2, e.State().RoundIndex)
}

func TestEngine_NextRoundClearsSelectionAndRestartsTimer(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()

	clock.Advance(10 * time.Second)
	e.SelectOption(2)
	require.True(t, e.NextRound())
	assert.Nil(t, e.State().SelectedIndex)

	clock.Advance(3 * time.Second)
	outcome, ok := e.SelectOption(1)
	require.True(t, ok)
	assert.Equal(t, int64(3000), outcome.ResponseTimeMs)
}

func TestEngine_InvariantsHoldUnderRandomCalls(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()

	picks := []int{0, 3, 1, 2, 2, 0, 5, 1, 0, 1, 0, 0}
	for i, pick := range picks {
		clock.Advance(time.Duration(i*700) * time.Millisecond)
		e.SelectOption(pick)
		if i%2 == 1 {
			e.NextRound()
		}
		state := e.State()
		assert.GreaterOrEqual(t, state.RoundIndex, 0)
		assert.Less(t, state.RoundIndex, len(state.Rounds))
		assert.GreaterOrEqual(t, state.Score, 0)
		assert.GreaterOrEqual(t, state.Accuracy, 0.0)
		assert.LessOrEqual(t, state.Accuracy, 1.0)
	}
}

func TestEngine_EndFromAnyStateInvokesCallbackEachTime(t *testing.T) {
	calls := 0
	e := newEngine(t, newClock(), func(models.RunSummary) { calls++ })

	summary := e.End()
	assert.Equal(t, 1, calls)
	assert.Equal(t, models.StatusSummary, e.Status())
	assert.Equal(t, summary.StartedAt, summary.CompletedAt, "never-started session has no elapsed time")

	e.End()
	assert.Equal(t, 2, calls)
}

func TestEngine_SelectAfterEndIsIgnored(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	e.Start()
	e.End()

	_, ok := e.SelectOption(2)
	assert.False(t, ok)
}

func TestEngine_ResetThenStartRestoresCleanRun(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()
	e.SelectOption(2)
	e.NextRound()
	e.SelectOption(1)
	e.End()
	firstID := e.ID()

	e.Reset()
	assert.Equal(t, models.StatusTutorial, e.State().Status)
	assert.NotEqual(t, firstID, e.ID(), "generated ids rotate on reset")

	e.Start()
	state := e.State()
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 0, state.Streak)
	assert.Equal(t, 0, state.RoundIndex)
	assert.Equal(t, models.StatusActive, state.Status)
	assert.Nil(t, state.SelectedIndex)

	clock.Advance(6 * time.Second)
	outcome, ok := e.SelectOption(2)
	require.True(t, ok)
	assert.Equal(t, 1, outcome.Combo, "combo starts over after reset")
}

func TestEngine_ResetWithNewRounds(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	e.Reset([]models.Round{{Prompt: "solo", Options: []string{"a", "b"}, CorrectIndex: 1}})

	assert.Len(t, e.State().Rounds, 1)
	e.Start()
	assert.False(t, e.NextRound())
	assert.Equal(t, 1, e.End().TotalRounds)
}

func TestEngine_StartMidRunReinitialises(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	e.Start()
	e.SelectOption(2)
	e.NextRound()

	e.Start()

	state := e.State()
	assert.Equal(t, 0, state.RoundIndex)
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 0.0, state.Accuracy)
}

func TestEngine_ElapsedFreezesAtEnd(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil)
	e.Start()
	clock.Advance(4 * time.Second)
	assert.Equal(t, int64(4000), e.State().ElapsedMs)

	e.End()
	clock.Advance(time.Minute)
	assert.Equal(t, int64(4000), e.State().ElapsedMs)
}

func TestEngine_StateIsACopy(t *testing.T) {
	e := newEngine(t, newClock(), nil)
	e.Start()
	e.SelectOption(2)

	state := e.State()
	*state.SelectedIndex = 99
	state.Rounds[0] = models.Round{}

	assert.Equal(t, 2, *e.State().SelectedIndex)
	assert.Equal(t, "one", e.State().Rounds[0].Prompt)
}

func TestEngine_EmptyRoundListIgnoresSelections(t *testing.T) {
	e := session.New(session.Config{Difficulty: 1, TargetDuration: time.Second})
	e.Start()

	_, ok := e.SelectOption(0)
	assert.False(t, ok)
	assert.False(t, e.NextRound())
	assert.Equal(t, 0, e.End().TotalRounds)
}

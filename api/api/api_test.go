/* api_test.go
 * Contains unit tests for api.go - testing all public API methods against the MockStore
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"madness-pool/api/bracket"
	"madness-pool/api/external"
	"madness-pool/api/shared"
	"madness-pool/api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

var testUser = shared.User{UserID: "100", Username: "alice"}

func newTestAPI() (*API, *MockStore) {
	m := NewMockStore()
	m.SetTournament(testutil.Games(), testutil.Field())
	return &API{Store: m, Workers: 2}, m
}

// draftWithPicks stores a draft bracket for testUser built from a played out game list
func draftWithPicks(m *MockStore, games []shared.Game) shared.Bracket {
	b := shared.Bracket{
		ID:         "bracket-1",
		Name:       "alice's bracket",
		UserID:     testUser.UserID,
		Username:   testUser.Username,
		Status:     shared.StatusDraft,
		Selections: bracket.SelectionsFromGames(games),
		Rounds:     bracket.GroupByRound(games),
	}
	m.Brackets[b.UserID] = b
	return b
}

// region NewAPI tests

func TestNewAPI_MissingParameters(t *testing.T) {
	tests := []struct {
		name         string
		dbName       string
		uri          string
		tournamentID string
	}{
		{"missing dbName", "", "mongodb://localhost", "2025"},
		{"missing uri", "db", "", "2025"},
		{"missing tournament", "db", "mongodb://localhost", ""},
		{"all missing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAPI(tt.dbName, tt.uri, tt.tournamentID, time.Second)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "are required")
		})
	}
}

// endregion

// region tournament tests

func TestCreateTournament_Success(t *testing.T) {
	m := NewMockStore()
	a := &API{Store: m}
	deadline := time.Date(2025, 3, 20, 16, 0, 0, 0, time.UTC)

	tournament, err := a.CreateTournament(external.Field{
		Name:     "Pool 2025",
		Year:     2025,
		Deadline: deadline,
		Teams:    testutil.Field(),
	})
	require.NoError(t, err)

	assert.Equal(t, m.TournamentID, tournament.ID)
	assert.Equal(t, 1, tournament.CurrentRound)
	assert.Equal(t, shared.DefaultRoundNames, tournament.RoundNames)
	assert.Len(t, tournament.Rounds[1], 32)
	assert.Len(t, bracket.Flatten(tournament.Rounds), shared.NumGames)
	require.NotNil(t, m.Tournament)
	assert.Equal(t, deadline, m.Tournament.SubmissionDeadline)
}

func TestCreateTournament_InvalidField(t *testing.T) {
	a := &API{Store: NewMockStore()}
	teams := testutil.Field()[1:]

	_, err := a.CreateTournament(external.Field{Name: "Broken", Teams: teams})
	require.Error(t, err)
	assert.ErrorIs(t, err, bracket.ErrDataIntegrity)
}

func TestCreateTournament_StoreError(t *testing.T) {
	m := NewMockStore()
	m.StoreTournamentError = errors.New("db down")
	a := &API{Store: m}

	_, err := a.CreateTournament(external.Field{Teams: testutil.Field()})
	assert.EqualError(t, err, "db down")
}

func TestGetTeams_OrderedByRegionAndSeed(t *testing.T) {
	a, m := newTestAPI()
	// Reverse the stored order
	teams := m.Tournament.Teams
	reversed := make([]shared.Team, len(teams))
	for i, team := range teams {
		reversed[len(teams)-1-i] = team
	}
	m.Tournament.Teams = reversed

	got, err := a.GetTeams()
	require.NoError(t, err)
	require.Len(t, got, shared.NumTeams)
	assert.Equal(t, "East 1", got[0].Name)
	assert.Equal(t, "East 16", got[15].Name)
	assert.Equal(t, "Midwest 16", got[63].Name)
}

func TestGetTeams_NoTournament(t *testing.T) {
	a := &API{Store: NewMockStore()}

	_, err := a.GetTeams()
	assert.ErrorIs(t, err, ErrNoTournament)
}

func TestGetTournamentInfo(t *testing.T) {
	a, m := newTestAPI()
	now := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	a.Now = func() time.Time { return now }

	info, err := a.GetTournamentInfo()
	require.NoError(t, err)
	assert.Contains(t, info, "Test Tournament (2025)")
	assert.Contains(t, info, "Current round: First Round")
	assert.Contains(t, info, "Games decided: 0 of 63")
	assert.Contains(t, info, "Submissions: open")

	m.Tournament.SubmissionDeadline = now.Add(-time.Hour)
	info, err = a.GetTournamentInfo()
	require.NoError(t, err)
	assert.Contains(t, info, "Submissions: closed")

	m.Tournament.SubmissionDeadline = now.Add(time.Hour)
	info, err = a.GetTournamentInfo()
	require.NoError(t, err)
	assert.Contains(t, info, "Submissions close:")
}

func TestRecordResult_PropagatesAndScores(t *testing.T) {
	a, m := newTestAPI()
	m.Brackets["200"] = shared.Bracket{
		ID:         "b-200",
		UserID:     "200",
		Username:   "bob",
		Status:     shared.StatusSubmitted,
		Selections: shared.Selections{1: {"1": "East 1"}},
	}

	game, err := a.RecordResult(context.Background(), 1, "east 1")
	require.NoError(t, err)
	assert.Equal(t, "East 1", game.Winner)

	// Winner moves into slot A of game 33
	games := bracket.Flatten(m.Tournament.Rounds)
	assert.Equal(t, "East 1", games[32].TeamA)

	// The leaderboard is regenerated and the bracket score written back
	require.NotNil(t, m.Leaderboard)
	require.Len(t, m.Leaderboard.Entries, 1)
	assert.Equal(t, 1, m.Leaderboard.Entries[0].Points)
	assert.Equal(t, shared.StatusScored, m.Brackets["200"].Status)
	assert.Equal(t, 1, m.Brackets["200"].Points)
}

func TestRecordResult_Errors(t *testing.T) {
	a, _ := newTestAPI()
	ctx := context.Background()

	_, err := a.RecordResult(ctx, 33, "East 1")
	assert.ErrorIs(t, err, ErrGameNotReady)

	_, err = a.RecordResult(ctx, 1, "West 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not playing in game 1")

	_, err = a.RecordResult(ctx, 64, "East 1")
	assert.ErrorIs(t, err, bracket.ErrInvalidRound)
}

func TestRecordResult_RequiresExactTeamName(t *testing.T) {
	a, m := newTestAPI()
	ctx := context.Background()

	// "1" is a partial match for both East 1 and East 16
	_, err := a.RecordResult(ctx, 1, "1")
	assert.ErrorIs(t, err, ErrUnknownTeam)
	_, err = a.RecordResult(ctx, 1, "east")
	assert.ErrorIs(t, err, ErrUnknownTeam)

	games := bracket.Flatten(m.Tournament.Rounds)
	assert.Empty(t, games[0].Winner)
	assert.Empty(t, games[32].TeamA)

	game, err := a.RecordResult(ctx, 1, "  EAST 16 ")
	require.NoError(t, err)
	assert.Equal(t, "East 16", game.Winner)
}

func TestRecordResult_ChangingWinnerClearsLaterRounds(t *testing.T) {
	a, m := newTestAPI()
	ctx := context.Background()

	_, err := a.RecordResult(ctx, 1, "East 1")
	require.NoError(t, err)
	_, err = a.RecordResult(ctx, 2, "East 8")
	require.NoError(t, err)
	_, err = a.RecordResult(ctx, 33, "East 1")
	require.NoError(t, err)

	_, err = a.RecordResult(ctx, 1, "East 16")
	require.NoError(t, err)

	games := bracket.Flatten(m.Tournament.Rounds)
	assert.Equal(t, "East 16", games[32].TeamA)
	assert.Empty(t, games[32].Winner)
	assert.Empty(t, games[48].TeamA)
}

func TestSetCurrentRound(t *testing.T) {
	a, m := newTestAPI()
	ctx := context.Background()

	require.NoError(t, a.SetCurrentRound(ctx, 3))
	assert.Equal(t, 3, m.Tournament.CurrentRound)
	require.NotNil(t, m.Leaderboard)
	assert.Equal(t, 3, m.Leaderboard.CurrentRound)

	assert.Error(t, a.SetCurrentRound(ctx, 0))
	assert.Error(t, a.SetCurrentRound(ctx, 7))
}

func TestAdvanceRound(t *testing.T) {
	a, m := newTestAPI()
	ctx := context.Background()

	round, err := a.AdvanceRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, round)
	assert.Equal(t, 2, m.Tournament.CurrentRound)

	m.Tournament.CurrentRound = shared.NumRounds
	_, err = a.AdvanceRound(ctx)
	assert.ErrorIs(t, err, ErrFinalRound)
}

// endregion

// region bracket tests

func TestCreateBracket_Success(t *testing.T) {
	a, m := newTestAPI()

	b, err := a.CreateBracket(testUser, "")
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "alice's bracket", b.Name)
	assert.Equal(t, shared.StatusDraft, b.Status)
	assert.Equal(t, m.TournamentID, b.TournamentID)
	assert.Zero(t, b.Selections.Count())
	assert.Len(t, bracket.Flatten(b.Rounds), shared.NumGames)
	assert.Equal(t, []string{testUser.UserID}, m.DeletedFor)
	assert.Contains(t, m.Brackets, testUser.UserID)
}

func TestCreateBracket_ReplacesDraft(t *testing.T) {
	a, m := newTestAPI()
	draftWithPicks(m, testutil.NewDataGenerator(1).PlayOut(testutil.Games(), 2))

	b, err := a.CreateBracket(testUser, "Fresh start")
	require.NoError(t, err)
	assert.Equal(t, "Fresh start", b.Name)
	assert.Zero(t, m.Brackets[testUser.UserID].Selections.Count())
	assert.NotEqual(t, "bracket-1", m.Brackets[testUser.UserID].ID)
}

func TestCreateBracket_Refused(t *testing.T) {
	t.Run("submitted", func(t *testing.T) {
		a, m := newTestAPI()
		b := draftWithPicks(m, testutil.Games())
		b.Status = shared.StatusSubmitted
		m.Brackets[b.UserID] = b

		_, err := a.CreateBracket(testUser, "")
		assert.ErrorIs(t, err, ErrBracketSubmitted)
	})

	t.Run("deadline passed", func(t *testing.T) {
		a, m := newTestAPI()
		now := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
		a.Now = func() time.Time { return now }
		m.Tournament.SubmissionDeadline = now.Add(-time.Minute)

		_, err := a.CreateBracket(testUser, "")
		assert.ErrorIs(t, err, ErrSubmissionClosed)
	})

	t.Run("no tournament", func(t *testing.T) {
		a := &API{Store: NewMockStore()}

		_, err := a.CreateBracket(testUser, "")
		assert.ErrorIs(t, err, ErrNoTournament)
	})
}

func TestSetPick_EastOneBeatsSixteen(t *testing.T) {
	a, m := newTestAPI()
	_, err := a.CreateBracket(testUser, "")
	require.NoError(t, err)

	game, err := a.SetPick(testUser, 1, "EAST 1")
	require.NoError(t, err)
	assert.Equal(t, "East 1", game.Winner)
	assert.Equal(t, "East 16", game.TeamB)

	// Picks still accept a partial name
	game, err = a.SetPick(testUser, 1, "16")
	require.NoError(t, err)
	assert.Equal(t, "East 16", game.Winner)
	game, err = a.SetPick(testUser, 1, "EAST 1")
	require.NoError(t, err)
	assert.Equal(t, "East 1", game.Winner)

	stored := m.Brackets[testUser.UserID]
	pick, ok := stored.Selections.Get(1, 1)
	require.True(t, ok)
	assert.Equal(t, "East 1", pick)
	assert.Equal(t, "East 1", bracket.Flatten(stored.Rounds)[32].TeamA)
}

func TestSetPick_ChangeClearsDownstream(t *testing.T) {
	a, m := newTestAPI()
	_, err := a.CreateBracket(testUser, "")
	require.NoError(t, err)

	for _, p := range []struct {
		game int
		team string
	}{{1, "East 1"}, {2, "East 8"}, {33, "East 1"}} {
		_, err := a.SetPick(testUser, p.game, p.team)
		require.NoError(t, err)
	}
	_, err = a.SetPick(testUser, 1, "East 16")
	require.NoError(t, err)

	stored := m.Brackets[testUser.UserID]
	_, ok := stored.Selections.Get(2, 33)
	assert.False(t, ok)
	assert.Equal(t, 2, stored.Selections.Count())
	assert.Equal(t, "East 16", bracket.Flatten(stored.Rounds)[32].TeamA)
}

func TestSetPick_RebuildsMissingRounds(t *testing.T) {
	a, m := newTestAPI()
	m.Brackets[testUser.UserID] = shared.Bracket{
		ID:         "legacy",
		UserID:     testUser.UserID,
		Status:     shared.StatusDraft,
		Selections: shared.Selections{1: {"1": "East 1", "2": "East 9"}},
	}

	game, err := a.SetPick(testUser, 33, "East 9")
	require.NoError(t, err)
	assert.Equal(t, "East 1", game.TeamA)
	assert.Equal(t, "East 9", game.Winner)
}

func TestSetPick_Errors(t *testing.T) {
	t.Run("no bracket", func(t *testing.T) {
		a, _ := newTestAPI()
		_, err := a.SetPick(testUser, 1, "East 1")
		assert.ErrorIs(t, err, ErrNoBracket)
	})

	t.Run("game not ready", func(t *testing.T) {
		a, _ := newTestAPI()
		_, err := a.CreateBracket(testUser, "")
		require.NoError(t, err)

		_, err = a.SetPick(testUser, 33, "East 1")
		assert.ErrorIs(t, err, ErrGameNotReady)
	})

	t.Run("team not in game", func(t *testing.T) {
		a, _ := newTestAPI()
		_, err := a.CreateBracket(testUser, "")
		require.NoError(t, err)

		_, err = a.SetPick(testUser, 1, "South 3")
		assert.Error(t, err)
	})

	t.Run("already submitted", func(t *testing.T) {
		a, m := newTestAPI()
		b := draftWithPicks(m, testutil.Games())
		b.Status = shared.StatusSubmitted
		m.Brackets[b.UserID] = b

		_, err := a.SetPick(testUser, 1, "East 1")
		assert.ErrorIs(t, err, ErrBracketSubmitted)
	})

	t.Run("deadline passed", func(t *testing.T) {
		a, m := newTestAPI()
		_, err := a.CreateBracket(testUser, "")
		require.NoError(t, err)
		m.Tournament.SubmissionDeadline = time.Now().Add(-time.Hour)

		_, err = a.SetPick(testUser, 1, "East 1")
		assert.ErrorIs(t, err, ErrSubmissionClosed)
	})
}

func TestGetMatchups(t *testing.T) {
	a, _ := newTestAPI()
	_, err := a.CreateBracket(testUser, "")
	require.NoError(t, err)
	_, err = a.SetPick(testUser, 1, "East 1")
	require.NoError(t, err)

	first, err := a.GetMatchups(testUser, 1)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := a.GetMatchups(testUser, 2)
	require.NoError(t, err)
	require.Len(t, second, 16)
	assert.Equal(t, 33, second[0].GameID)
	assert.Equal(t, "East 1", second[0].TeamA)
	assert.Empty(t, second[0].TeamB)

	_, err = a.GetMatchups(testUser, 7)
	assert.ErrorIs(t, err, bracket.ErrInvalidRound)
}

func TestSubmitBracket(t *testing.T) {
	a, m := newTestAPI()
	now := time.Date(2025, 3, 19, 12, 0, 0, 0, time.UTC)
	a.Now = func() time.Time { return now }
	draftWithPicks(m, testutil.NewDataGenerator(7).PlayOut(testutil.Games(), shared.NumRounds))

	require.NoError(t, a.SubmitBracket(testUser))

	stored := m.Brackets[testUser.UserID]
	assert.Equal(t, shared.StatusSubmitted, stored.Status)
	require.NotNil(t, stored.SubmittedAt)
	assert.Equal(t, now, *stored.SubmittedAt)

	assert.ErrorIs(t, a.SubmitBracket(testUser), ErrBracketSubmitted)
}

func TestSubmitBracket_Incomplete(t *testing.T) {
	a, m := newTestAPI()
	draftWithPicks(m, testutil.NewDataGenerator(7).PlayOut(testutil.Games(), 5))

	err := a.SubmitBracket(testUser)
	require.ErrorIs(t, err, ErrIncompleteBracket)
	assert.Contains(t, err.Error(), "62 of 63")
}

func TestCheckBracket(t *testing.T) {
	a, m := newTestAPI()
	gen := testutil.NewDataGenerator(3)
	played := gen.PlayOut(testutil.Games(), shared.NumRounds)
	draftWithPicks(m, played)
	m.Tournament.Rounds = bracket.GroupByRound(played)

	report, err := a.CheckBracket(testUser)
	require.NoError(t, err)
	assert.Contains(t, report, "alice's bracket (draft)")
	assert.Contains(t, report, "Points: 192 (max possible 192)")
	assert.Contains(t, report, "Correct picks: 63 of 63")
}

func TestCompareBrackets(t *testing.T) {
	a, m := newTestAPI()
	gen := testutil.NewDataGenerator(5)
	mine := draftWithPicks(m, gen.PlayOut(testutil.Games(), shared.NumRounds))

	// Comparing against an identical bracket gives the maximum score
	twin := mine
	twin.UserID = "300"
	twin.Name = "twin"
	m.Brackets[twin.UserID] = twin

	report, err := a.CompareBrackets(testUser, "300")
	require.NoError(t, err)
	assert.Contains(t, report, "Points: 192")

	_, err = a.CompareBrackets(testUser, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not have a bracket")
}

// endregion

// region leaderboard tests

func TestGenerateLeaderboard_RanksAndSkipsDrafts(t *testing.T) {
	a, m := newTestAPI()
	gen := testutil.NewDataGenerator(11)
	played := gen.PlayOut(testutil.Games(), shared.NumRounds)
	m.Tournament.Rounds = bracket.GroupByRound(played)
	m.Tournament.CurrentRound = shared.NumRounds

	perfect := shared.Bracket{
		ID: "perfect", UserID: "1", Username: "perfect", Status: shared.StatusSubmitted,
		Selections: bracket.SelectionsFromGames(played),
	}
	random := gen.Bracket(testutil.Games())
	draft := gen.Bracket(testutil.Games())
	draft.Status = shared.StatusDraft
	m.Brackets[perfect.UserID] = perfect
	m.Brackets[random.UserID] = random
	m.Brackets[draft.UserID] = draft

	leaderboard, err := a.GenerateLeaderboard(context.Background())
	require.NoError(t, err)

	require.Len(t, leaderboard.Entries, 2)
	assert.Equal(t, "perfect", leaderboard.Entries[0].Username)
	assert.Equal(t, 1, leaderboard.Entries[0].Rank)
	assert.Equal(t, 192, leaderboard.Entries[0].Points)
	assert.NotEmpty(t, leaderboard.ResultsHash)
	assert.Equal(t, shared.StatusDraft, m.Brackets[draft.UserID].Status)
	assert.Equal(t, shared.StatusScored, m.Brackets[perfect.UserID].Status)
}

func TestGenerateLeaderboard_OnlyWritesChangedScores(t *testing.T) {
	a, m := newTestAPI()
	_, err := a.RecordResult(context.Background(), 1, "East 1")
	require.NoError(t, err)
	b := testutil.NewDataGenerator(2).Bracket(testutil.Games())
	m.Brackets[b.UserID] = b

	_, err = a.GenerateLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, m.ScoreUpdates, 1)

	_, err = a.GenerateLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.ScoreUpdates, 1)
}

func TestGenerateLeaderboard_Errors(t *testing.T) {
	a, m := newTestAPI()
	m.GetAllBracketsError = errors.New("boom")
	_, err := a.GenerateLeaderboard(context.Background())
	assert.EqualError(t, err, "boom")

	m.GetAllBracketsError = nil
	m.Brackets["1"] = testutil.NewDataGenerator(1).Bracket(testutil.Games())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.GenerateLeaderboard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetLeaderboard(t *testing.T) {
	a, m := newTestAPI()

	_, err := a.GetLeaderboard()
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	m.Brackets["1"] = testutil.NewDataGenerator(9).Bracket(testutil.Games())
	_, err = a.GenerateLeaderboard(context.Background())
	require.NoError(t, err)

	response, err := a.GetLeaderboard()
	require.NoError(t, err)
	assert.Contains(t, response, "1. "+m.Brackets["1"].Username)
}

func TestGetLeaderboard_Empty(t *testing.T) {
	a, _ := newTestAPI()
	_, err := a.GenerateLeaderboard(context.Background())
	require.NoError(t, err)

	response, err := a.GetLeaderboard()
	require.NoError(t, err)
	assert.Equal(t, "No brackets have been submitted yet", response)
}

// endregion

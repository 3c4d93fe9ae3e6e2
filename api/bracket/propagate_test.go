/* propagate_test.go
 * Contains unit tests for propagate.go and the selection replay helpers
 * Authors: Zachary Bower
 */

package bracket_test

import (
	"errors"
	"testing"

	"madness-pool/api/bracket"
	"madness-pool/api/shared"
	"madness-pool/api/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotTeam(g shared.Game, pos bracket.Position) string {
	if pos == bracket.SlotA {
		return g.TeamA
	}
	return g.TeamB
}

// region PropagateWinner tests

func TestPropagateWinner_FillsDownstreamSlot(t *testing.T) {
	games := testutil.Games()
	east1 := testutil.TeamName(shared.East, 1)
	east9 := testutil.TeamName(shared.East, 9)

	out, err := bracket.PropagateWinner(games, 1, 1, east1)
	require.NoError(t, err)
	out, err = bracket.PropagateWinner(out, 2, 1, east9)
	require.NoError(t, err)

	assert.Equal(t, east1, out[0].Winner)
	assert.Equal(t, east9, out[1].Winner)
	assert.Equal(t, east1, out[32].TeamA)
	assert.Equal(t, east9, out[32].TeamB)
}

func TestPropagateWinner_DoesNotModifyInput(t *testing.T) {
	games := testutil.Games()
	before := make([]shared.Game, len(games))
	copy(before, games)

	_, err := bracket.PropagateWinner(games, 1, 1, testutil.TeamName(shared.East, 16))
	require.NoError(t, err)

	if diff := cmp.Diff(before, games); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestPropagateWinner_WinnerNotInGame(t *testing.T) {
	games := testutil.Games()

	_, err := bracket.PropagateWinner(games, 1, 1, testutil.TeamName(shared.West, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, bracket.ErrDataIntegrity))

	var integrityErr *bracket.DataIntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, 1, integrityErr.GameID)
}

func TestPropagateWinner_UndecidedGameHasNoTeams(t *testing.T) {
	games := testutil.Games()

	_, err := bracket.PropagateWinner(games, 33, 2, testutil.TeamName(shared.East, 1))
	assert.ErrorIs(t, err, bracket.ErrDataIntegrity)
}

func TestPropagateWinner_InvalidRound(t *testing.T) {
	games := testutil.Games()

	_, err := bracket.PropagateWinner(games, 1, 0, testutil.TeamName(shared.East, 1))
	assert.ErrorIs(t, err, bracket.ErrInvalidRound)

	_, err = bracket.PropagateWinner(games, 1, 2, testutil.TeamName(shared.East, 1))
	assert.ErrorIs(t, err, bracket.ErrInvalidRound)
}

func TestPropagateWinner_Championship(t *testing.T) {
	gen := testutil.NewDataGenerator(3)
	games := gen.PlayOut(testutil.Games(), 5)
	final := games[62]
	require.NotEmpty(t, final.TeamA)
	require.NotEmpty(t, final.TeamB)

	out, err := bracket.PropagateWinner(games, 63, 6, final.TeamB)
	require.NoError(t, err)
	assert.Equal(t, final.TeamB, out[62].Winner)
	assert.Len(t, out, shared.NumGames)
}

func TestPropagateWinner_ChangedPickCascades(t *testing.T) {
	// Take East 1 all the way to the title, then change the round 1 pick to East 16
	games := testutil.Games()
	east1 := testutil.TeamName(shared.East, 1)
	gen := testutil.NewDataGenerator(11)
	games = gen.PlayOut(games, 6)

	path := []int{1, 33, 49, 57, 61, 63}
	var err error
	for i, id := range path {
		require.True(t, games[id-1].HasTeam(east1), "east 1 missing from game %d", id)
		games, err = bracket.PropagateWinner(games, id, i+1, east1)
		require.NoError(t, err)
	}
	require.Equal(t, east1, games[62].Winner)

	east16 := testutil.TeamName(shared.East, 16)
	out, err := bracket.PropagateWinner(games, 1, 1, east16)
	require.NoError(t, err)

	assert.Equal(t, east16, out[32].TeamA)
	assert.Empty(t, out[32].Winner)
	for _, id := range path[2:] {
		assert.Empty(t, out[id-1].Winner, "game %d", id)
	}
	assert.NotEqual(t, east1, out[48].TeamA)
	assert.NotEqual(t, east1, out[62].TeamA)
	assert.NotEqual(t, east1, out[62].TeamB)
}

func TestPropagateWinner_SameWinnerKeepsDownstream(t *testing.T) {
	gen := testutil.NewDataGenerator(5)
	games := gen.PlayOut(testutil.Games(), 6)

	out, err := bracket.PropagateWinner(games, 1, 1, games[0].Winner)
	require.NoError(t, err)
	if diff := cmp.Diff(games, out); diff != "" {
		t.Errorf("re-recording a winner changed the bracket:\n%s", diff)
	}
}

func TestPropagateWinner_ClearPick(t *testing.T) {
	games := testutil.Games()
	east1 := testutil.TeamName(shared.East, 1)
	games, err := bracket.PropagateWinner(games, 1, 1, east1)
	require.NoError(t, err)

	out, err := bracket.PropagateWinner(games, 1, 1, "")
	require.NoError(t, err)
	assert.Empty(t, out[0].Winner)
	assert.Empty(t, out[32].TeamA)
}

func TestPropagateWinner_InvariantRandomized(t *testing.T) {
	gen := testutil.NewDataGenerator(42)
	for i := 0; i < 200; i++ {
		games := gen.PlayOut(testutil.Games(), gen.Number(1, 6))

		id := gen.Number(1, 62)
		round := shared.RoundOf(id)
		game := games[id-1]
		if game.TeamA == "" || game.TeamB == "" {
			continue
		}
		winner := game.TeamA
		if gen.Number(0, 1) == 1 {
			winner = game.TeamB
		}

		slot, err := bracket.NextSlot(id, round)
		require.NoError(t, err)
		before := slotTeam(games[slot.GameID-1], slot.Position)

		out, err := bracket.PropagateWinner(games, id, round, winner)
		require.NoError(t, err)

		down := out[slot.GameID-1]
		assert.Equal(t, winner, slotTeam(down, slot.Position))
		if before != winner {
			assert.Empty(t, down.Winner, "downstream game %d kept a stale winner", slot.GameID)
		}
		for _, g := range out {
			if g.Winner != "" {
				assert.True(t, g.HasTeam(g.Winner), "game %d winner %q not playing", g.GameID, g.Winner)
			}
		}
	}
}

// endregion

// region selection replay tests

func TestSelectionsFromGames_RoundTrip(t *testing.T) {
	gen := testutil.NewDataGenerator(9)
	played := gen.PlayOut(testutil.Games(), 6)

	sel := bracket.SelectionsFromGames(played)
	assert.Equal(t, shared.NumGames, sel.Count())

	replayed, err := bracket.ApplySelections(testutil.Games(), sel)
	require.NoError(t, err)
	if diff := cmp.Diff(played, replayed); diff != "" {
		t.Errorf("replay differs (-played +replayed):\n%s", diff)
	}
}

func TestApplySelections_DropsStrandedPick(t *testing.T) {
	sel := shared.Selections{}
	sel.Set(1, 1, testutil.TeamName(shared.East, 1))
	sel.Set(1, 2, testutil.TeamName(shared.East, 8))
	sel.Set(2, 33, testutil.TeamName(shared.East, 9)) // East 9 lost in round 1

	out, err := bracket.ApplySelections(testutil.Games(), sel)
	require.NoError(t, err)
	assert.Empty(t, out[32].Winner)
	assert.Equal(t, 2, bracket.SelectionsFromGames(out).Count())
}

func TestGroupByRoundAndFlatten(t *testing.T) {
	games := testutil.Games()
	rounds := bracket.GroupByRound(games)
	assert.Len(t, rounds, shared.NumRounds)
	assert.Len(t, rounds[1], 32)
	assert.Len(t, rounds[6], 1)

	if diff := cmp.Diff(games, bracket.Flatten(rounds)); diff != "" {
		t.Errorf("Flatten(GroupByRound) differs:\n%s", diff)
	}
}

// endregion

/* propagate.go
 * Contains the logic to record a winner and move them into the next round. The same function is used for a user's
 * picks and for the official results, the two game lists are never shared
 * Authors: Zachary Bower
 */

package bracket

import (
	"fmt"

	"madness-pool/api/shared"
)

// PropagateWinner records winner for gameID and places them in the downstream game.
// Preconditions: receives the game list, the game id and round being decided and the winning team. An empty winner
// clears the game
// Postconditions: returns a new game list, the input is not modified. If the downstream slot previously held a
// different team its winner is cleared, and the clear carries on down the path that team had been advanced along.
// Returns a *DataIntegrityError if winner is not playing in the game and an *InvalidRoundError if the game is not in
// the round
func PropagateWinner(games []shared.Game, gameID int, round int, winner string) ([]shared.Game, error) {
	first, last, err := RoundGameRange(round)
	if err != nil {
		return nil, &InvalidRoundError{GameID: gameID, Round: round, Reason: "round does not exist"}
	}
	if gameID < first || gameID > last {
		return nil, &InvalidRoundError{GameID: gameID, Round: round, Reason: "game is not part of this round"}
	}

	out := make([]shared.Game, len(games))
	copy(out, games)

	idx := indexOf(out, gameID)
	if idx < 0 {
		return nil, &DataIntegrityError{GameID: gameID, Reason: "game missing from bracket"}
	}
	if out[idx].Round != round {
		return nil, &DataIntegrityError{GameID: gameID, Reason: fmt.Sprintf("game is stored as round %d", out[idx].Round)}
	}
	if winner != "" && !out[idx].HasTeam(winner) {
		return nil, &DataIntegrityError{GameID: gameID, Reason: fmt.Sprintf("%q is not playing in this game", winner)}
	}

	if err := advance(out, idx, winner); err != nil {
		return nil, err
	}
	return out, nil
}

// advance sets the winner of games[idx] and writes it into the next slot, clearing downstream results that depended
// on the team being replaced
func advance(games []shared.Game, idx int, winner string) error {
	game := &games[idx]
	game.Winner = winner
	if game.Round >= shared.NumRounds {
		return nil
	}

	slot, err := NextSlot(game.GameID, game.Round)
	if err != nil {
		return err
	}
	didx := indexOf(games, slot.GameID)
	if didx < 0 {
		return &DataIntegrityError{GameID: slot.GameID, Reason: "game missing from bracket"}
	}

	down := &games[didx]
	if slot.Position == SlotA {
		if down.TeamA == winner {
			return nil
		}
		down.TeamA = winner
	} else {
		if down.TeamB == winner {
			return nil
		}
		down.TeamB = winner
	}

	if down.Winner == "" {
		return nil
	}
	return advance(games, didx, "")
}

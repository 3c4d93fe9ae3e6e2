/* feed.go
 * Contains the feed mapping that decides which game and slot the winner of a game moves into
 * Authors: Zachary Bower
 */

package bracket

import (
	"madness-pool/api/shared"
)

// Position is the side of a game a team occupies
type Position string

const (
	SlotA Position = "A"
	SlotB Position = "B"
)

// Slot identifies where the winner of a game is placed in the next round
type Slot struct {
	GameID   int
	Position Position
}

// NextSlot returns the downstream game and slot for the winner of gameID.
// Preconditions: receives a game id and the round it is played in. Round must be 1-5, the championship has no downstream
// Postconditions: returns the Slot, or an *InvalidRoundError if the round is out of range or does not contain gameID
func NextSlot(gameID int, round int) (Slot, error) {
	first, last, err := RoundGameRange(round)
	if err != nil {
		return Slot{}, &InvalidRoundError{GameID: gameID, Round: round, Reason: "round does not exist"}
	}
	if round == shared.NumRounds {
		return Slot{}, &InvalidRoundError{GameID: gameID, Round: round, Reason: "championship has no downstream game"}
	}
	if gameID < first || gameID > last {
		return Slot{}, &InvalidRoundError{GameID: gameID, Round: round, Reason: "game is not part of this round"}
	}

	// Offset of the game inside its round, starting at 1. Pairs (1,2), (3,4)... feed the same game in the next round
	// which is numbered from the id after this round's last game
	offset := gameID - first + 1
	position := SlotB
	if offset%2 == 1 {
		position = SlotA
	}
	return Slot{GameID: last + (offset+1)/2, Position: position}, nil
}

// Feeders returns the two games whose winners fill slot A and slot B of gameID. Round 1 games have no feeders
func Feeders(gameID int) (int, int, bool) {
	round := shared.RoundOf(gameID)
	if round <= 1 {
		return 0, 0, false
	}
	first, _, _ := shared.GameIDRange(round)
	prevFirst, _, _ := shared.GameIDRange(round - 1)
	offset := gameID - first
	a := prevFirst + 2*offset
	return a, a + 1, true
}

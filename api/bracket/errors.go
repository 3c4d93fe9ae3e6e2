/* errors.go
 * Error types returned by the bracket generator and winner propagation
 * Authors: Zachary Bower
 */

package bracket

import (
	"errors"
	"fmt"
)

var (
	// ErrDataIntegrity is matched by every DataIntegrityError. These are surfaced to the admin as bad input
	ErrDataIntegrity = errors.New("bracket data integrity error")
	// ErrInvalidRound is matched by every InvalidRoundError. These indicate a caller bug
	ErrInvalidRound = errors.New("invalid round")
)

// DataIntegrityError is returned when the team list or game graph is inconsistent, e.g. a missing seed or a winner
// that is not playing in the game
type DataIntegrityError struct {
	GameID int
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.GameID == 0 {
		return fmt.Sprintf("bracket data integrity error: %s", e.Reason)
	}
	return fmt.Sprintf("bracket data integrity error in game %d: %s", e.GameID, e.Reason)
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// InvalidRoundError is returned when a round is outside 1-6, when a game id does not belong to the round it was
// given with, or when a downstream slot is requested for the championship
type InvalidRoundError struct {
	GameID int
	Round  int
	Reason string
}

func (e *InvalidRoundError) Error() string {
	return fmt.Sprintf("invalid round %d for game %d: %s", e.Round, e.GameID, e.Reason)
}

func (e *InvalidRoundError) Is(target error) bool {
	return target == ErrInvalidRound
}

/* prediction.go
 * Contains the logic for treating one bracket's predictions as results so another bracket can be scored against it
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"strconv"

	"madness-pool/api/bracket"
	"madness-pool/api/shared"
)

// SelectionsAsResults turns a bracket's picks into Results, as if every pick had happened.
// Preconditions: receives the picks and optionally the round 1 game list. Without the game list only Rounds is filled
// and no team is ever eliminated
// Postconditions: returns Results with every pick in Rounds. When skeleton is given the picks are replayed through
// it, so Games holds the matchups the picks produce and a pick the replay drops is left out of Rounds as well.
// Returns an error if a game id is invalid or the replay fails
func SelectionsAsResults(sel shared.Selections, skeleton []shared.Game) (Results, error) {
	results := Results{
		Rounds: make(map[int]map[string]string),
		Games:  make(map[int]GameResult),
	}
	if len(skeleton) == 0 {
		for round, games := range sel {
			for id, team := range games {
				if team == "" {
					continue
				}
				gameID, err := strconv.Atoi(id)
				if err != nil {
					return Results{}, fmt.Errorf("invalid game id %q in round %d: %w", id, round, err)
				}
				results.setWinner(round, gameID, GameResult{Round: round, Winner: team})
			}
		}
		return results, nil
	}

	if err := sel.Validate(); err != nil {
		return Results{}, fmt.Errorf("invalid selections: %w", err)
	}
	played, err := bracket.ApplySelections(skeleton, sel)
	if err != nil {
		return Results{}, fmt.Errorf("error replaying selections: %w", err)
	}
	for _, g := range played {
		results.setWinner(g.Round, g.GameID, GameResult{Round: g.Round, TeamA: g.TeamA, TeamB: g.TeamB, Winner: g.Winner})
	}
	return results, nil
}

// setWinner indexes a game and, when it has a winner, records it as decided
func (r Results) setWinner(round int, gameID int, g GameResult) {
	r.Games[gameID] = g
	if g.Winner == "" {
		return
	}
	if r.Rounds[round] == nil {
		r.Rounds[round] = make(map[string]string)
	}
	r.Rounds[round][strconv.Itoa(gameID)] = g.Winner
}

// Compare scores b against other's picks.
// Preconditions: receives the bracket being scored, the bracket treated as correct, the round 1 game list and the
// current round
// Postconditions: returns the ScoreReport of b if other's bracket were perfect
func Compare(b shared.Bracket, other shared.Bracket, skeleton []shared.Game, currentRound int) (ScoreReport, error) {
	results, err := SelectionsAsResults(other.Selections, skeleton)
	if err != nil {
		return ScoreReport{}, err
	}
	report := Score(b, results)
	report.MaxPossible = MaxPossible(b, results, currentRound)
	return report, nil
}

/* rounds.go
 * Helpers for moving between the flat game list and the round keyed map that is stored on tournaments and brackets
 * Authors: Zachary Bower
 */

package bracket

import (
	"sort"

	"madness-pool/api/shared"
)

// RoundGameRange returns the first and last game id of a round
func RoundGameRange(round int) (int, int, error) {
	first, last, ok := shared.GameIDRange(round)
	if !ok {
		return 0, 0, &InvalidRoundError{Round: round, Reason: "round does not exist"}
	}
	return first, last, nil
}

// RoundForGame returns the round a game id is played in
func RoundForGame(gameID int) (int, error) {
	round := shared.RoundOf(gameID)
	if round == 0 {
		return 0, &InvalidRoundError{GameID: gameID, Reason: "game id out of range"}
	}
	return round, nil
}

// GamesInRound returns the games of a single round ordered by id
func GamesInRound(games []shared.Game, round int) []shared.Game {
	var out []shared.Game
	for _, g := range games {
		if g.Round == round {
			out = append(out, g)
		}
	}
	sortGames(out)
	return out
}

// GroupByRound splits a game list into the round keyed map
func GroupByRound(games []shared.Game) map[int][]shared.Game {
	rounds := make(map[int][]shared.Game)
	for _, g := range games {
		rounds[g.Round] = append(rounds[g.Round], g)
	}
	for r := range rounds {
		sortGames(rounds[r])
	}
	return rounds
}

// Flatten is the inverse of GroupByRound. The result is ordered by game id
func Flatten(rounds map[int][]shared.Game) []shared.Game {
	var games []shared.Game
	for _, rg := range rounds {
		games = append(games, rg...)
	}
	sortGames(games)
	return games
}

// SelectionsFromGames rebuilds a Selections map from the winners recorded on a game list
func SelectionsFromGames(games []shared.Game) shared.Selections {
	sel := make(shared.Selections)
	for _, g := range games {
		if g.Winner != "" {
			sel.Set(g.Round, g.GameID, g.Winner)
		}
	}
	return sel
}

// ApplySelections replays picks onto a game list in round order. Picks that no longer fit the game they are
// recorded against are dropped, which is how a pick stranded by an earlier change is discarded
func ApplySelections(games []shared.Game, sel shared.Selections) ([]shared.Game, error) {
	out := games
	for r := 1; r <= shared.NumRounds; r++ {
		first, last, _ := shared.GameIDRange(r)
		for id := first; id <= last; id++ {
			team, ok := sel.Get(r, id)
			if !ok {
				continue
			}
			idx := indexOf(out, id)
			if idx < 0 {
				return nil, &DataIntegrityError{GameID: id, Reason: "game missing from bracket"}
			}
			if !out[idx].HasTeam(team) {
				continue
			}
			next, err := PropagateWinner(out, id, r, team)
			if err != nil {
				return nil, err
			}
			out = next
		}
	}
	return out, nil
}

func sortGames(games []shared.Game) {
	sort.Slice(games, func(i, j int) bool {
		return games[i].GameID < games[j].GameID
	})
}

func indexOf(games []shared.Game, gameID int) int {
	for i := range games {
		if games[i].GameID == gameID {
			return i
		}
	}
	return -1
}

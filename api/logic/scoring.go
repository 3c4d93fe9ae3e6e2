/* scoring.go
 * Contains the scoring engine. Scores a bracket's selections against a set of results, which are either the official
 * results or another bracket's picks in comparison mode
 * Authors: Zachary Bower
 */

package logic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"madness-pool/api/shared"
)

// PointsPerRound is the value of a correct pick in each round, round 1 first
var PointsPerRound = [shared.NumRounds]int{1, 2, 4, 8, 16, 32}

// MaxScore is the score of a perfect bracket
const MaxScore = 192

type ScoreReport struct {
	Points       int
	CorrectPicks int
	TotalPicks   int
	RoundScores  [shared.NumRounds]int
	MaxPossible  int
}

// GameResult is an entry in the flat game index of Results
type GameResult struct {
	Round  int
	TeamA  string
	TeamB  string
	Winner string
}

// Results holds the decided winners keyed round -> game id, plus every known game keyed by id. A game missing from
// Rounds has not been decided yet
type Results struct {
	Rounds map[int]map[string]string
	Games  map[int]GameResult
}

// Winner returns the recorded winner of a game
func (r Results) Winner(round int, gameID string) (string, bool) {
	games, ok := r.Rounds[round]
	if !ok {
		return "", false
	}
	winner, ok := games[gameID]
	return winner, ok && winner != ""
}

// Decided returns the number of games with a recorded winner
func (r Results) Decided() int {
	n := 0
	for _, games := range r.Rounds {
		for _, w := range games {
			if w != "" {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy that shares nothing with r
func (r Results) Clone() Results {
	out := Results{
		Rounds: make(map[int]map[string]string, len(r.Rounds)),
		Games:  make(map[int]GameResult, len(r.Games)),
	}
	for round, games := range r.Rounds {
		inner := make(map[string]string, len(games))
		for id, w := range games {
			inner[id] = w
		}
		out.Rounds[round] = inner
	}
	for id, g := range r.Games {
		out.Games[id] = g
	}
	return out
}

// ProcessActualResults flattens the tournament's games into Results.
// Preconditions: receives the tournament as stored in the db
// Postconditions: returns Results where only decided games appear in Rounds and every game appears in Games
func ProcessActualResults(t shared.Tournament) Results {
	results := Results{
		Rounds: make(map[int]map[string]string),
		Games:  make(map[int]GameResult),
	}
	for _, games := range t.Rounds {
		for _, g := range games {
			results.Games[g.GameID] = GameResult{Round: g.Round, TeamA: g.TeamA, TeamB: g.TeamB, Winner: g.Winner}
			if g.Winner == "" {
				continue
			}
			if results.Rounds[g.Round] == nil {
				results.Rounds[g.Round] = make(map[string]string)
			}
			results.Rounds[g.Round][strconv.Itoa(g.GameID)] = g.Winner
		}
	}
	return results
}

// Score calculates a bracket's points, correct picks and per round score. It does not modify the bracket and returns
// the same report for the same inputs. MaxPossible is left at 0, use MaxPossible or UpdateBracketScoring for it
func Score(b shared.Bracket, results Results) ScoreReport {
	var report ScoreReport
	for round := 1; round <= shared.NumRounds; round++ {
		for gameID, picked := range b.Selections[round] {
			if picked == "" {
				continue
			}
			report.TotalPicks++
			if winner, ok := results.Winner(round, gameID); ok && winner == picked {
				report.RoundScores[round-1] += PointsPerRound[round-1]
				report.CorrectPicks++
			}
		}
		report.Points += report.RoundScores[round-1]
	}
	return report
}

// EliminatedTeams returns every team that has lost a decided game. A loss in any round, including the round being
// played, eliminates a team
func EliminatedTeams(results Results) map[string]bool {
	eliminated := make(map[string]bool)
	for _, g := range results.Games {
		if loser := (shared.Game{TeamA: g.TeamA, TeamB: g.TeamB, Winner: g.Winner}).Loser(); loser != "" {
			eliminated[loser] = true
		}
	}
	return eliminated
}

// MaxPossible returns the best score the bracket can still reach.
// Preconditions: receives the bracket, the results and the round currently being played
// Postconditions: returns the points already earned plus the value of every undecided pick from currentRound onwards
// whose team has not been eliminated. Teams that never appear in a decided game are not eliminated
func MaxPossible(b shared.Bracket, results Results, currentRound int) int {
	if currentRound < 1 {
		currentRound = 1
	}
	total := Score(b, results).Points
	eliminated := EliminatedTeams(results)

	for round := currentRound; round <= shared.NumRounds; round++ {
		for gameID, picked := range b.Selections[round] {
			if picked == "" {
				continue
			}
			if _, decided := results.Winner(round, gameID); decided {
				continue
			}
			if eliminated[picked] {
				continue
			}
			total += PointsPerRound[round-1]
		}
	}
	return total
}

// UpdateBracketScoring returns a copy of b with the score fields recalculated. Nothing else is changed
func UpdateBracketScoring(b shared.Bracket, results Results, currentRound int) shared.Bracket {
	report := Score(b, results)
	report.MaxPossible = MaxPossible(b, results, currentRound)

	out := b
	out.Points = report.Points
	out.CorrectPicks = report.CorrectPicks
	out.TotalPicks = report.TotalPicks
	out.RoundScores = report.RoundScores
	out.MaxPossible = report.MaxPossible
	return out
}

// UpdateLeaderboardScores scores every bracket against the same results. results must not change during the call
func UpdateLeaderboardScores(brackets []shared.Bracket, results Results, currentRound int) []shared.Bracket {
	out := make([]shared.Bracket, len(brackets))
	for i, b := range brackets {
		out[i] = UpdateBracketScoring(b, results, currentRound)
	}
	return out
}

// ReportFor reads the score fields of a bracket back into a ScoreReport
func ReportFor(b shared.Bracket) ScoreReport {
	return ScoreReport{
		Points:       b.Points,
		CorrectPicks: b.CorrectPicks,
		TotalPicks:   b.TotalPicks,
		RoundScores:  b.RoundScores,
		MaxPossible:  b.MaxPossible,
	}
}

// ResultsHash returns a hash of the decided games. Two results with the same winners hash the same
func ResultsHash(results Results) string {
	var lines []string
	for round, games := range results.Rounds {
		for id, w := range games {
			if w == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("%d:%s=%s", round, id, w))
		}
	}
	sort.Strings(lines)

	hash := sha256.Sum256([]byte(strings.Join(lines, ";")))
	return hex.EncodeToString(hash[:])
}

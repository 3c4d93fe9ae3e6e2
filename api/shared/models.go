/* models.go
 * This file contain the structs and helper functions that are shared between sub packages. These are the shapes
 * stored in the db and passed between the bracket generator, the scoring engine and the api
 * Authors: Zachary Bower
 */

package shared

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	NumRounds      = 6
	NumGames       = 63
	NumTeams       = 64
	TeamsPerRegion = 16
)

type User struct {
	UserID   string
	Username string
}

// Region is one of the four sub brackets that each produce a Final Four team
type Region string

const (
	East    Region = "East"
	West    Region = "West"
	South   Region = "South"
	Midwest Region = "Midwest"
)

// Regions is the fixed region order used for game id assignment
var Regions = []Region{East, West, South, Midwest}

// DefaultRoundNames are used when a tournament is created without its own names
var DefaultRoundNames = []string{
	"First Round",
	"Second Round",
	"Sweet 16",
	"Elite Eight",
	"Final Four",
	"Championship",
}

// ParseRegion converts user or file input into a Region, ignoring case
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region: %q", s)
}

type Team struct {
	Name   string                 `bson:"name" json:"name" yaml:"name"`
	Seed   int                    `bson:"seed" json:"seed" yaml:"seed"`
	Region Region                 `bson:"region" json:"region" yaml:"region"`
	Year   int                    `bson:"year,omitempty" json:"year,omitempty" yaml:"year,omitempty"`
	Stats  map[string]interface{} `bson:"stats,omitempty" json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Game is a single matchup. TeamA and TeamB are empty until the feeding games have a winner
type Game struct {
	GameID int    `bson:"gameid" json:"gameId"`
	Round  int    `bson:"round" json:"round"`
	Region Region `bson:"region,omitempty" json:"region,omitempty"`
	TeamA  string `bson:"teama" json:"teamA"`
	TeamB  string `bson:"teamb" json:"teamB"`
	Winner string `bson:"winner" json:"winner"`
}

// HasTeam reports whether team is one of the two teams in this game
func (g Game) HasTeam(team string) bool {
	return team != "" && (g.TeamA == team || g.TeamB == team)
}

// Loser returns the team that did not win, or "" if the game is undecided
func (g Game) Loser() string {
	switch g.Winner {
	case "":
		return ""
	case g.TeamA:
		return g.TeamB
	case g.TeamB:
		return g.TeamA
	}
	return ""
}

// GameIDRange returns the first and last game id of a round, or ok=false if the round does not exist
func GameIDRange(round int) (first int, last int, ok bool) {
	switch round {
	case 1:
		return 1, 32, true
	case 2:
		return 33, 48, true
	case 3:
		return 49, 56, true
	case 4:
		return 57, 60, true
	case 5:
		return 61, 62, true
	case 6:
		return 63, 63, true
	}
	return 0, 0, false
}

// RoundOf returns the round a game id belongs to, or 0 if the id is out of range
func RoundOf(gameID int) int {
	for r := 1; r <= NumRounds; r++ {
		first, last, _ := GameIDRange(r)
		if gameID >= first && gameID <= last {
			return r
		}
	}
	return 0
}

// Selections holds a bracket's picks as round -> game id -> winning team name. Game ids are string keys
// because that is how the documents are stored
type Selections map[int]map[string]string

// Get returns the pick for a game. An empty pick is reported as absent
func (s Selections) Get(round int, gameID int) (string, bool) {
	games, ok := s[round]
	if !ok {
		return "", false
	}
	team, ok := games[strconv.Itoa(gameID)]
	return team, ok && team != ""
}

// Set records a pick, an empty team removes it
func (s Selections) Set(round int, gameID int, team string) {
	key := strconv.Itoa(gameID)
	if team == "" {
		if games, ok := s[round]; ok {
			delete(games, key)
			if len(games) == 0 {
				delete(s, round)
			}
		}
		return
	}
	if s[round] == nil {
		s[round] = make(map[string]string)
	}
	s[round][key] = team
}

// Count returns the number of non-empty picks
func (s Selections) Count() int {
	n := 0
	for _, games := range s {
		for _, team := range games {
			if team != "" {
				n++
			}
		}
	}
	return n
}

func (s Selections) Clone() Selections {
	if s == nil {
		return nil
	}
	out := make(Selections, len(s))
	for round, games := range s {
		inner := make(map[string]string, len(games))
		for id, team := range games {
			inner[id] = team
		}
		out[round] = inner
	}
	return out
}

// Validate checks the shape of selections loaded from the db: rounds must be 1-6 and each game id must be a
// number belonging to its round
func (s Selections) Validate() error {
	for round, games := range s {
		first, last, ok := GameIDRange(round)
		if !ok {
			return fmt.Errorf("selections contain invalid round %d", round)
		}
		for key := range games {
			id, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("selections contain non numeric game id %q in round %d", key, round)
			}
			if id < first || id > last {
				return fmt.Errorf("game %d is not part of round %d", id, round)
			}
		}
	}
	return nil
}

// BracketStatus tracks a bracket through draft -> submitted -> scored
type BracketStatus string

const (
	StatusDraft     BracketStatus = "draft"
	StatusSubmitted BracketStatus = "submitted"
	StatusScored    BracketStatus = "scored"
)

type Bracket struct {
	ID           string         `bson:"_id,omitempty" json:"id"`
	Name         string         `bson:"name,omitempty" json:"name"`
	UserID       string         `bson:"userid,omitempty" json:"userId"`
	Username     string         `bson:"username,omitempty" json:"username"`
	TournamentID string         `bson:"tournamentid,omitempty" json:"tournamentId"`
	Status       BracketStatus  `bson:"status,omitempty" json:"status"`
	Selections   Selections     `bson:"selections,omitempty" json:"selections"`
	Rounds       map[int][]Game `bson:"rounds,omitempty" json:"rounds,omitempty"`

	// Score fields, only written by the scoring engine
	Points       int            `bson:"points" json:"points"`
	CorrectPicks int            `bson:"correctpicks" json:"correctPicks"`
	TotalPicks   int            `bson:"totalpicks" json:"totalPicks"`
	RoundScores  [NumRounds]int `bson:"roundscores" json:"roundScores"`
	MaxPossible  int            `bson:"maxpossible" json:"maxPossible"`

	CreatedAt   time.Time  `bson:"createdat,omitempty" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedat,omitempty" json:"updatedAt"`
	SubmittedAt *time.Time `bson:"submittedat,omitempty" json:"submittedAt,omitempty"`
}

// IsComplete reports whether every game has a pick
func (b Bracket) IsComplete() bool {
	return b.Selections.Count() == NumGames
}

// Editable reports whether the owner may still change picks
func (b Bracket) Editable() bool {
	return b.Status == "" || b.Status == StatusDraft
}

type Tournament struct {
	ID                 string         `bson:"_id,omitempty" json:"id"`
	Name               string         `bson:"name,omitempty" json:"name"`
	Year               int            `bson:"year,omitempty" json:"year"`
	Teams              []Team         `bson:"teams,omitempty" json:"teams"`
	Rounds             map[int][]Game `bson:"rounds,omitempty" json:"rounds"`
	CurrentRound       int            `bson:"currentround,omitempty" json:"currentRound"`
	RoundNames         []string       `bson:"roundnames,omitempty" json:"roundNames"`
	SubmissionDeadline time.Time      `bson:"submissiondeadline,omitempty" json:"submissionDeadline"`
}

// RoundName returns the display name for a round, falling back to the defaults when the document has none
func (t Tournament) RoundName(round int) string {
	if round >= 1 && round <= len(t.RoundNames) && t.RoundNames[round-1] != "" {
		return t.RoundNames[round-1]
	}
	if round >= 1 && round <= NumRounds {
		return DefaultRoundNames[round-1]
	}
	return fmt.Sprintf("Round %d", round)
}

// SubmissionsOpen reports whether brackets may still be changed at the given time. A zero deadline never closes
func (t Tournament) SubmissionsOpen(now time.Time) bool {
	return t.SubmissionDeadline.IsZero() || now.Before(t.SubmissionDeadline)
}

/* models.go
 * This file contain the structs that only exist in the db layer. Tournaments and brackets live in shared
 * Authors: Zachary Bower
 */

package store

import (
	"time"

	"madness-pool/api/shared"
)

type LeaderboardEntry struct {
	Rank         int                   `bson:"rank" json:"rank"`
	UserID       string                `bson:"userid" json:"userId"`
	Username     string                `bson:"username" json:"username"`
	BracketName  string                `bson:"bracketname,omitempty" json:"bracketName,omitempty"`
	Points       int                   `bson:"points" json:"points"`
	CorrectPicks int                   `bson:"correctpicks" json:"correctPicks"`
	TotalPicks   int                   `bson:"totalpicks" json:"totalPicks"`
	RoundScores  [shared.NumRounds]int `bson:"roundscores" json:"roundScores"`
	MaxPossible  int                   `bson:"maxpossible" json:"maxPossible"`
}

// Leaderboard is stored once per tournament. ResultsHash is the hash of the results it was calculated from
type Leaderboard struct {
	TournamentID string             `bson:"tournamentid" json:"tournamentId"`
	CurrentRound int                `bson:"currentround" json:"currentRound"`
	ResultsHash  string             `bson:"resultshash" json:"resultsHash"`
	UpdatedAt    time.Time          `bson:"updatedat" json:"updatedAt"`
	Entries      []LeaderboardEntry `bson:"entries" json:"entries"`
}

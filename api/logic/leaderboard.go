/* leaderboard.go
 * Contains the logic for ranking scored brackets and formatting score reports
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"sort"
	"strings"

	"madness-pool/api/shared"
	"madness-pool/api/store"
)

// BuildLeaderboardEntries converts scored brackets into sorted, ranked leaderboard entries.
// Preconditions: receives brackets that have already been through UpdateBracketScoring
// Postconditions: returns entries sorted by SortLeaderboard. Entries with the same points, max possible and correct
// picks share a rank
func BuildLeaderboardEntries(brackets []shared.Bracket) []store.LeaderboardEntry {
	entries := make([]store.LeaderboardEntry, 0, len(brackets))
	for _, b := range brackets {
		entries = append(entries, store.LeaderboardEntry{
			UserID:       b.UserID,
			Username:     b.Username,
			BracketName:  b.Name,
			Points:       b.Points,
			CorrectPicks: b.CorrectPicks,
			TotalPicks:   b.TotalPicks,
			RoundScores:  b.RoundScores,
			MaxPossible:  b.MaxPossible,
		})
	}
	SortLeaderboard(entries)

	for i := range entries {
		if i > 0 && sameStanding(entries[i-1], entries[i]) {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}

// SortLeaderboard orders entries by points, then max possible, then correct picks, all descending, then username
func SortLeaderboard(entries []store.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.MaxPossible != b.MaxPossible {
			return a.MaxPossible > b.MaxPossible
		}
		if a.CorrectPicks != b.CorrectPicks {
			return a.CorrectPicks > b.CorrectPicks
		}
		return strings.ToLower(a.Username) < strings.ToLower(b.Username)
	})
}

func sameStanding(a, b store.LeaderboardEntry) bool {
	return a.Points == b.Points && a.MaxPossible == b.MaxPossible && a.CorrectPicks == b.CorrectPicks
}

// ScoreReportString formats a score report for display
// Preconditions: receives the report and the tournament the round names come from
// Postconditions: returns a multi line string with the per round breakdown
func ScoreReportString(report ScoreReport, tournament shared.Tournament) string {
	var response strings.Builder
	response.WriteString(fmt.Sprintf("Points: %d (max possible %d)\n", report.Points, report.MaxPossible))
	response.WriteString(fmt.Sprintf("Correct picks: %d of %d\n", report.CorrectPicks, report.TotalPicks))
	for round := 1; round <= shared.NumRounds; round++ {
		response.WriteString(fmt.Sprintf("- %s: %d\n", tournament.RoundName(round), report.RoundScores[round-1]))
	}
	return response.String()
}

/* test_helpers.go
 * Contains test helper functions for store package tests and the integration tests that need a real db
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"
	"time"

	"madness-pool/api/shared"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewStore("test_madness", mongoURI, "test-tournament", 5*time.Second)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			store.Database.Drop(context.TODO())
			store.Client.Disconnect(context.TODO())
		}
	}
	return store, cleanup, nil
}

// CreateSampleBracket creates a draft bracket with the East 1 seed picked to win game 1
func CreateSampleBracket(id string, userID string, username string) shared.Bracket {
	sel := shared.Selections{}
	sel.Set(1, 1, "East 1")
	return shared.Bracket{
		ID:           id,
		Name:         fmt.Sprintf("%s's bracket", username),
		UserID:       userID,
		Username:     username,
		TournamentID: "test-tournament",
		Status:       shared.StatusDraft,
		Selections:   sel,
	}
}

// CreateSampleLeaderboard creates a leaderboard with two entries
func CreateSampleLeaderboard() Leaderboard {
	return Leaderboard{
		TournamentID: "test-tournament",
		CurrentRound: 2,
		ResultsHash:  "abc123",
		UpdatedAt:    time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC),
		Entries: []LeaderboardEntry{
			{Rank: 1, UserID: "user1", Username: "TestUser1", Points: 30, CorrectPicks: 24, TotalPicks: 63, MaxPossible: 180},
			{Rank: 2, UserID: "user2", Username: "TestUser2", Points: 28, CorrectPicks: 22, TotalPicks: 63, MaxPossible: 170},
		},
	}
}

/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"madness-pool/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetTournament() (shared.Tournament, error)
	StoreTournament(tournament shared.Tournament) error

	GetBracket(userID string) (shared.Bracket, error)
	GetAllBrackets() ([]shared.Bracket, error)
	StoreBracket(bracket shared.Bracket) error
	DeleteBracket(userID string) error
	UpdateBracketScores(brackets []shared.Bracket) error

	FetchLeaderboardFromDB() (Leaderboard, error)
	StoreLeaderboard(leaderboard Leaderboard) error

	// Getter methods for accessing fields
	GetTournamentID() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetTournamentID returns the id of the tournament this store reads and writes
func (s *Store) GetTournamentID() string {
	return s.TournamentID
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}

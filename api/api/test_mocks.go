/* test_mocks.go
 * Contains mock structures for testing the API package without a database
 * Authors: Zachary Bower
 */

package api

import (
	"context"

	"madness-pool/api/shared"
	"madness-pool/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements store.Interface in memory
type MockStore struct {
	// Storage for mock data
	Tournament    *shared.Tournament
	Brackets      map[string]shared.Bracket
	Leaderboard   *store.Leaderboard
	TournamentID  string
	ScoreUpdates  [][]shared.Bracket
	DeletedFor    []string
	StoredCounter int

	// Error injection for testing error paths
	GetTournamentError       error
	StoreTournamentError     error
	GetBracketError          error
	GetAllBracketsError      error
	StoreBracketError        error
	DeleteBracketError       error
	UpdateBracketScoresError error
	FetchLeaderboardError    error
	StoreLeaderboardError    error
}

var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new MockStore with no tournament
func NewMockStore() *MockStore {
	return &MockStore{
		Brackets:     make(map[string]shared.Bracket),
		TournamentID: "test-tournament",
	}
}

// GetTournament mock implementation
func (m *MockStore) GetTournament() (shared.Tournament, error) {
	if m.GetTournamentError != nil {
		return shared.Tournament{}, m.GetTournamentError
	}
	if m.Tournament == nil {
		return shared.Tournament{}, mongo.ErrNoDocuments
	}
	return cloneTournament(*m.Tournament), nil
}

// StoreTournament mock implementation
func (m *MockStore) StoreTournament(tournament shared.Tournament) error {
	if m.StoreTournamentError != nil {
		return m.StoreTournamentError
	}
	t := cloneTournament(tournament)
	m.Tournament = &t
	return nil
}

// GetBracket mock implementation
func (m *MockStore) GetBracket(userID string) (shared.Bracket, error) {
	if m.GetBracketError != nil {
		return shared.Bracket{}, m.GetBracketError
	}
	b, ok := m.Brackets[userID]
	if !ok {
		return shared.Bracket{}, mongo.ErrNoDocuments
	}
	return cloneBracket(b), nil
}

// GetAllBrackets mock implementation
func (m *MockStore) GetAllBrackets() ([]shared.Bracket, error) {
	if m.GetAllBracketsError != nil {
		return nil, m.GetAllBracketsError
	}
	var brackets []shared.Bracket
	for _, b := range m.Brackets {
		brackets = append(brackets, cloneBracket(b))
	}
	return brackets, nil
}

// StoreBracket mock implementation
func (m *MockStore) StoreBracket(bracket shared.Bracket) error {
	if m.StoreBracketError != nil {
		return m.StoreBracketError
	}
	m.StoredCounter++
	m.Brackets[bracket.UserID] = cloneBracket(bracket)
	return nil
}

// DeleteBracket mock implementation
func (m *MockStore) DeleteBracket(userID string) error {
	if m.DeleteBracketError != nil {
		return m.DeleteBracketError
	}
	m.DeletedFor = append(m.DeletedFor, userID)
	delete(m.Brackets, userID)
	return nil
}

// UpdateBracketScores mock implementation. Only the score fields and status are copied, as the real store does
func (m *MockStore) UpdateBracketScores(brackets []shared.Bracket) error {
	if m.UpdateBracketScoresError != nil {
		return m.UpdateBracketScoresError
	}
	m.ScoreUpdates = append(m.ScoreUpdates, brackets)
	for _, b := range brackets {
		existing, ok := m.Brackets[b.UserID]
		if !ok {
			continue
		}
		existing.Points = b.Points
		existing.CorrectPicks = b.CorrectPicks
		existing.TotalPicks = b.TotalPicks
		existing.RoundScores = b.RoundScores
		existing.MaxPossible = b.MaxPossible
		existing.Status = b.Status
		m.Brackets[b.UserID] = existing
	}
	return nil
}

// FetchLeaderboardFromDB mock implementation
func (m *MockStore) FetchLeaderboardFromDB() (store.Leaderboard, error) {
	if m.FetchLeaderboardError != nil {
		return store.Leaderboard{}, m.FetchLeaderboardError
	}
	if m.Leaderboard == nil {
		return store.Leaderboard{}, mongo.ErrNoDocuments
	}
	return *m.Leaderboard, nil
}

// StoreLeaderboard mock implementation
func (m *MockStore) StoreLeaderboard(leaderboard store.Leaderboard) error {
	if m.StoreLeaderboardError != nil {
		return m.StoreLeaderboardError
	}
	m.Leaderboard = &leaderboard
	return nil
}

// GetTournamentID mock implementation
func (m *MockStore) GetTournamentID() string {
	return m.TournamentID
}

// mockClient implements the minimal client interface
type mockClient struct{}

func (mockClient) Disconnect(context.Context) error { return nil }

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return mockClient{}
}

// Helper methods for setting up test scenarios

// SetTournament stores a tournament built from the given round 1 games
func (m *MockStore) SetTournament(games []shared.Game, teams []shared.Team) {
	rounds := make(map[int][]shared.Game)
	for _, g := range games {
		rounds[g.Round] = append(rounds[g.Round], g)
	}
	m.Tournament = &shared.Tournament{
		ID:           m.TournamentID,
		Name:         "Test Tournament",
		Year:         2025,
		Teams:        teams,
		Rounds:       rounds,
		CurrentRound: 1,
		RoundNames:   append([]string(nil), shared.DefaultRoundNames...),
	}
}

func cloneTournament(t shared.Tournament) shared.Tournament {
	out := t
	out.Rounds = cloneRounds(t.Rounds)
	return out
}

func cloneBracket(b shared.Bracket) shared.Bracket {
	out := b
	out.Selections = b.Selections.Clone()
	out.Rounds = cloneRounds(b.Rounds)
	return out
}

func cloneRounds(rounds map[int][]shared.Game) map[int][]shared.Game {
	if rounds == nil {
		return nil
	}
	out := make(map[int][]shared.Game, len(rounds))
	for r, games := range rounds {
		out[r] = append([]shared.Game(nil), games...)
	}
	return out
}

/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, functions should
 * only be called from this file, not the sub packages for bracket, logic and store
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"madness-pool/api/bracket"
	"madness-pool/api/external"
	"madness-pool/api/logic"
	"madness-pool/api/shared"
	"madness-pool/api/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// API provides methods for interacting with the bracket pool data layer
type API struct {
	Store store.Interface
	// Now is used for deadline checks. Nil uses time.Now
	Now func() time.Time
	// Workers is the number of goroutines used when scoring the leaderboard. <= 0 uses the number of CPUs
	Workers int
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, tournamentID string, timeout time.Duration) (*API, error) {
	if dbName == "" || mongoURI == "" || tournamentID == "" {
		return nil, fmt.Errorf("dbName, mongoURI and tournamentID are required")
	}

	s, err := store.NewStore(dbName, mongoURI, tournamentID, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store: s,
	}, nil
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// region tournament

// CreateTournament builds the round 1 games from a field and stores the tournament. Any results already recorded for
// the tournament id are replaced.
// Preconditions: Receives a field with all 64 teams
// Postconditions: Returns the stored tournament, or an error if the field does not produce a valid bracket
func (a *API) CreateTournament(field external.Field) (shared.Tournament, error) {
	games, err := bracket.Generate(field.Teams)
	if err != nil {
		return shared.Tournament{}, fmt.Errorf("invalid field: %w", err)
	}

	roundNames := field.RoundNames
	if len(roundNames) != shared.NumRounds {
		roundNames = append([]string(nil), shared.DefaultRoundNames...)
	}

	tournament := shared.Tournament{
		ID:                 a.Store.GetTournamentID(),
		Name:               field.Name,
		Year:               field.Year,
		Teams:              field.Teams,
		Rounds:             bracket.GroupByRound(games),
		CurrentRound:       1,
		RoundNames:         roundNames,
		SubmissionDeadline: field.Deadline,
	}
	if err := a.Store.StoreTournament(tournament); err != nil {
		return shared.Tournament{}, err
	}
	log.Printf("created tournament %s with %d teams", tournament.ID, len(tournament.Teams))
	return tournament, nil
}

// getTournament fetches the tournament and maps a missing document to ErrNoTournament
func (a *API) getTournament() (shared.Tournament, error) {
	t, err := a.Store.GetTournament()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return shared.Tournament{}, ErrNoTournament
	}
	return t, err
}

// GetTeams gets every team in the field, ordered by region then seed
func (a *API) GetTeams() ([]shared.Team, error) {
	t, err := a.getTournament()
	if err != nil {
		return nil, err
	}

	teams := make([]shared.Team, 0, len(t.Teams))
	for _, region := range shared.Regions {
		for seed := 1; seed <= shared.TeamsPerRegion; seed++ {
			for _, team := range t.Teams {
				if team.Region == region && team.Seed == seed {
					teams = append(teams, team)
				}
			}
		}
	}
	return teams, nil
}

// GetTournamentInfo returns a summary of the tournament for the $details command
func (a *API) GetTournamentInfo() (string, error) {
	t, err := a.getTournament()
	if err != nil {
		return "", err
	}
	results := logic.ProcessActualResults(t)

	var response strings.Builder
	response.WriteString(fmt.Sprintf("%s (%d)\n", t.Name, t.Year))
	response.WriteString(fmt.Sprintf("Current round: %s\n", t.RoundName(t.CurrentRound)))
	response.WriteString(fmt.Sprintf("Games decided: %d of %d\n", results.Decided(), shared.NumGames))
	switch {
	case t.SubmissionDeadline.IsZero():
		response.WriteString("Submissions: open\n")
	case t.SubmissionsOpen(a.now()):
		response.WriteString(fmt.Sprintf("Submissions close: %s\n", t.SubmissionDeadline.UTC().Format(time.RFC1123)))
	default:
		response.WriteString("Submissions: closed\n")
	}
	return response.String(), nil
}

// RecordResult sets the winner of a real game, moves them into the next round and recalculates the leaderboard.
// Preconditions: Receives the game id and the winning team. The team name must match one of the two teams in the game
// exactly, ignoring case
// Postconditions: Returns the updated game, or an error if the game is unknown, not ready or the team is not playing
func (a *API) RecordResult(ctx context.Context, gameID int, winner string) (shared.Game, error) {
	t, err := a.getTournament()
	if err != nil {
		return shared.Game{}, err
	}

	games, game, err := pickTarget(bracket.Flatten(t.Rounds), gameID, winner, logic.MatchTeamName)
	if err != nil {
		return shared.Game{}, err
	}
	t.Rounds = bracket.GroupByRound(games)
	if err := a.Store.StoreTournament(t); err != nil {
		return shared.Game{}, err
	}
	log.Printf("recorded %s as winner of game %d", game.Winner, game.GameID)

	if _, err := a.GenerateLeaderboard(ctx); err != nil {
		return game, fmt.Errorf("result recorded but leaderboard update failed: %w", err)
	}
	return game, nil
}

// SetCurrentRound changes the round in play and recalculates the leaderboard, as max possible depends on it
func (a *API) SetCurrentRound(ctx context.Context, round int) error {
	if round < 1 || round > shared.NumRounds {
		return fmt.Errorf("round must be between 1 and %d", shared.NumRounds)
	}
	t, err := a.getTournament()
	if err != nil {
		return err
	}

	t.CurrentRound = round
	if err := a.Store.StoreTournament(t); err != nil {
		return err
	}
	log.Printf("tournament %s moved to round %d", t.ID, round)

	_, err = a.GenerateLeaderboard(ctx)
	return err
}

// AdvanceRound moves the tournament to the next round and returns it
func (a *API) AdvanceRound(ctx context.Context) (int, error) {
	t, err := a.getTournament()
	if err != nil {
		return 0, err
	}
	if t.CurrentRound >= shared.NumRounds {
		return t.CurrentRound, ErrFinalRound
	}
	next := t.CurrentRound + 1
	if next < 1 {
		next = 1
	}
	return next, a.SetCurrentRound(ctx, next)
}

// endregion

// region brackets

// getBracket fetches a user's bracket and maps a missing document to ErrNoBracket
func (a *API) getBracket(userID string) (shared.Bracket, error) {
	b, err := a.Store.GetBracket(userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return shared.Bracket{}, ErrNoBracket
	}
	return b, err
}

// GetBracket returns the stored bracket of a user
func (a *API) GetBracket(userID string) (shared.Bracket, error) {
	return a.getBracket(userID)
}

// skeleton returns the round 1 games of the tournament with no results
func skeleton(t shared.Tournament) ([]shared.Game, error) {
	return bracket.Generate(t.Teams)
}

// CreateBracket starts an empty bracket for the user, replacing any draft they already have.
// Preconditions: Receives the user and an optional bracket name
// Postconditions: Returns the new bracket, ErrSubmissionClosed after the deadline or ErrBracketSubmitted if the user
// has already submitted
func (a *API) CreateBracket(user shared.User, name string) (shared.Bracket, error) {
	t, err := a.getTournament()
	if err != nil {
		return shared.Bracket{}, err
	}
	now := a.now()
	if !t.SubmissionsOpen(now) {
		return shared.Bracket{}, ErrSubmissionClosed
	}

	existing, err := a.getBracket(user.UserID)
	switch {
	case err == nil && !existing.Editable():
		return shared.Bracket{}, ErrBracketSubmitted
	case err != nil && !errors.Is(err, ErrNoBracket):
		return shared.Bracket{}, err
	}

	games, err := skeleton(t)
	if err != nil {
		return shared.Bracket{}, err
	}
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("%s's bracket", user.Username)
	}

	b := shared.Bracket{
		ID:           uuid.NewString(),
		Name:         name,
		UserID:       user.UserID,
		Username:     user.Username,
		TournamentID: t.ID,
		Status:       shared.StatusDraft,
		Selections:   shared.Selections{},
		Rounds:       bracket.GroupByRound(games),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.Store.DeleteBracket(user.UserID); err != nil {
		return shared.Bracket{}, err
	}
	if err := a.Store.StoreBracket(b); err != nil {
		return shared.Bracket{}, err
	}
	return b, nil
}

// SetPick picks the winner of one game in the user's bracket. Picks in later rounds that relied on a team being
// replaced are cleared.
// Preconditions: Receives the user, the game id and the team name as typed by the user
// Postconditions: Returns the game with the pick set, or an error if the bracket cannot be changed, the game is not
// ready or the team is not playing in it
func (a *API) SetPick(user shared.User, gameID int, team string) (shared.Game, error) {
	t, err := a.getTournament()
	if err != nil {
		return shared.Game{}, err
	}
	now := a.now()
	if !t.SubmissionsOpen(now) {
		return shared.Game{}, ErrSubmissionClosed
	}

	b, err := a.getBracket(user.UserID)
	if err != nil {
		return shared.Game{}, err
	}
	if !b.Editable() {
		return shared.Game{}, ErrBracketSubmitted
	}

	games, err := bracketGames(b, t)
	if err != nil {
		return shared.Game{}, err
	}
	games, game, err := pickTarget(games, gameID, team, logic.ResolveTeamName)
	if err != nil {
		return shared.Game{}, err
	}

	b.Rounds = bracket.GroupByRound(games)
	b.Selections = bracket.SelectionsFromGames(games)
	b.UpdatedAt = now
	if err := a.Store.StoreBracket(b); err != nil {
		return shared.Game{}, err
	}
	return game, nil
}

// bracketGames returns the games of a bracket, rebuilding them from the picks when the document has none
func bracketGames(b shared.Bracket, t shared.Tournament) ([]shared.Game, error) {
	if games := bracket.Flatten(b.Rounds); len(games) == shared.NumGames {
		return games, nil
	}
	games, err := skeleton(t)
	if err != nil {
		return nil, err
	}
	return bracket.ApplySelections(games, b.Selections)
}

// pickTarget resolves the team typed for a game with resolve and propagates it as the winner
func pickTarget(games []shared.Game, gameID int, team string, resolve func(string, []string) (string, error)) ([]shared.Game, shared.Game, error) {
	round, err := bracket.RoundForGame(gameID)
	if err != nil {
		return nil, shared.Game{}, err
	}

	var target *shared.Game
	for i := range games {
		if games[i].GameID == gameID {
			target = &games[i]
			break
		}
	}
	if target == nil {
		return nil, shared.Game{}, fmt.Errorf("game %d not found", gameID)
	}
	if target.TeamA == "" || target.TeamB == "" {
		return nil, shared.Game{}, fmt.Errorf("game %d: %w", gameID, ErrGameNotReady)
	}

	winner, err := resolve(team, []string{target.TeamA, target.TeamB})
	if err != nil {
		return nil, shared.Game{}, fmt.Errorf("%w: %q is not playing in game %d (%s vs %s)", ErrUnknownTeam, team, gameID, target.TeamA, target.TeamB)
	}

	updated, err := bracket.PropagateWinner(games, gameID, round, winner)
	if err != nil {
		return nil, shared.Game{}, err
	}
	for _, g := range updated {
		if g.GameID == gameID {
			return updated, g, nil
		}
	}
	return nil, shared.Game{}, fmt.Errorf("game %d not found", gameID)
}

// GetMatchups returns the games of a round as they stand in the user's bracket
// Preconditions: Receives the user and a round between 1 and 6
// Postconditions: Returns the games in id order. Teams are empty where the user has not picked the feeding game yet
func (a *API) GetMatchups(user shared.User, round int) ([]shared.Game, error) {
	if _, _, err := bracket.RoundGameRange(round); err != nil {
		return nil, err
	}
	t, err := a.getTournament()
	if err != nil {
		return nil, err
	}
	b, err := a.getBracket(user.UserID)
	if err != nil {
		return nil, err
	}

	games, err := bracketGames(b, t)
	if err != nil {
		return nil, err
	}
	return bracket.GamesInRound(games, round), nil
}

// SubmitBracket locks in a complete bracket
// Preconditions: Receives the user. The bracket must have a pick for all 63 games and the deadline must not have passed
// Postconditions: Stores the bracket as submitted, or returns ErrIncompleteBracket, ErrSubmissionClosed or
// ErrBracketSubmitted
func (a *API) SubmitBracket(user shared.User) error {
	t, err := a.getTournament()
	if err != nil {
		return err
	}
	now := a.now()
	if !t.SubmissionsOpen(now) {
		return ErrSubmissionClosed
	}

	b, err := a.getBracket(user.UserID)
	if err != nil {
		return err
	}
	if !b.Editable() {
		return ErrBracketSubmitted
	}
	if !b.IsComplete() {
		return fmt.Errorf("%w: %d of %d games picked", ErrIncompleteBracket, b.Selections.Count(), shared.NumGames)
	}

	b.Status = shared.StatusSubmitted
	b.SubmittedAt = &now
	b.UpdatedAt = now
	if err := a.Store.StoreBracket(b); err != nil {
		return err
	}
	log.Printf("bracket %s submitted by %s", b.ID, user.Username)
	return nil
}

// CheckBracket scores the user's bracket against the current results and returns the report
func (a *API) CheckBracket(user shared.User) (string, error) {
	t, err := a.getTournament()
	if err != nil {
		return "", err
	}
	b, err := a.getBracket(user.UserID)
	if err != nil {
		return "", err
	}

	scored := logic.UpdateBracketScoring(b, logic.ProcessActualResults(t), t.CurrentRound)

	var response strings.Builder
	response.WriteString(fmt.Sprintf("%s (%s)\n", b.Name, b.Status))
	response.WriteString(logic.ScoreReportString(logic.ReportFor(scored), t))
	return response.String(), nil
}

// CompareBrackets scores the user's bracket as if the other user's picks were the real results
// Preconditions: Receives the user and the discord id of the other user
// Postconditions: Returns a report of how many of the user's picks agree with the other bracket, weighted by round
func (a *API) CompareBrackets(user shared.User, otherUserID string) (string, error) {
	t, err := a.getTournament()
	if err != nil {
		return "", err
	}
	b, err := a.getBracket(user.UserID)
	if err != nil {
		return "", err
	}
	other, err := a.getBracket(otherUserID)
	if err != nil {
		if errors.Is(err, ErrNoBracket) {
			return "", fmt.Errorf("that user does not have a bracket")
		}
		return "", err
	}
	games, err := skeleton(t)
	if err != nil {
		return "", err
	}

	report, err := logic.Compare(b, other, games, 1)
	if err != nil {
		return "", err
	}

	var response strings.Builder
	response.WriteString(fmt.Sprintf("%s compared with %s:\n", b.Name, other.Name))
	response.WriteString(logic.ScoreReportString(report, t))
	return response.String(), nil
}

// endregion

// region leaderboard

// GenerateLeaderboard scores every submitted bracket against one snapshot of the results and stores the leaderboard.
// Preconditions: Receives a context that cancels the scoring
// Postconditions: Brackets whose scores changed are written back, the leaderboard is replaced and returned, or an
// error is returned if it occurs
func (a *API) GenerateLeaderboard(ctx context.Context) (store.Leaderboard, error) {
	t, err := a.getTournament()
	if err != nil {
		return store.Leaderboard{}, err
	}
	brackets, err := a.Store.GetAllBrackets()
	if err != nil {
		return store.Leaderboard{}, err
	}

	var entered []shared.Bracket
	for _, b := range brackets {
		if b.Status == shared.StatusSubmitted || b.Status == shared.StatusScored {
			entered = append(entered, b)
		}
	}

	results := logic.ProcessActualResults(t)
	scored, err := logic.ScoreBrackets(ctx, entered, results, t.CurrentRound, a.Workers)
	if err != nil {
		return store.Leaderboard{}, fmt.Errorf("error scoring brackets: %w", err)
	}

	var changed []shared.Bracket
	for i := range scored {
		if results.Decided() > 0 {
			scored[i].Status = shared.StatusScored
		}
		if scoreChanged(entered[i], scored[i]) {
			changed = append(changed, scored[i])
		}
	}
	if len(changed) > 0 {
		if err := a.Store.UpdateBracketScores(changed); err != nil {
			return store.Leaderboard{}, err
		}
	}

	leaderboard := store.Leaderboard{
		TournamentID: t.ID,
		CurrentRound: t.CurrentRound,
		ResultsHash:  logic.ResultsHash(results),
		UpdatedAt:    a.now(),
		Entries:      logic.BuildLeaderboardEntries(scored),
	}
	if err := a.Store.StoreLeaderboard(leaderboard); err != nil {
		return store.Leaderboard{}, err
	}
	log.Printf("leaderboard generated: %d brackets, %d updated", len(scored), len(changed))
	return leaderboard, nil
}

func scoreChanged(before shared.Bracket, after shared.Bracket) bool {
	return before.Status != after.Status || logic.ReportFor(before) != logic.ReportFor(after)
}

// GetLeaderboardData returns the stored leaderboard, ordered
func (a *API) GetLeaderboardData() (store.Leaderboard, error) {
	leaderboard, err := a.Store.FetchLeaderboardFromDB()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.Leaderboard{}, fmt.Errorf("the leaderboard has not been generated yet: %w", err)
	}
	if err != nil {
		return store.Leaderboard{}, err
	}
	logic.SortLeaderboard(leaderboard.Entries)
	return leaderboard, nil
}

// GetLeaderboard fetches the leaderboard from the db and generates a response string
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns a string with the standings, or an error if the leaderboard has not been generated
func (a *API) GetLeaderboard() (string, error) {
	leaderboard, err := a.GetLeaderboardData()
	if err != nil {
		return "", err
	}
	if len(leaderboard.Entries) == 0 {
		return "No brackets have been submitted yet", nil
	}

	var response strings.Builder
	response.WriteString("The best brackets are:\n")
	for _, e := range leaderboard.Entries {
		response.WriteString(fmt.Sprintf("%d. %s, %d points (%d correct, max %d)\n", e.Rank, e.Username, e.Points, e.CorrectPicks, e.MaxPossible))
	}
	return response.String(), nil
}

// endregion

/* brackets.go
 * Contains the methods for interacting with the brackets collection
 * Authors: Zachary Bower
 */

package store

import (
	"errors"
	"fmt"
	"log"
	"time"

	"madness-pool/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetBracket does DB lookup and gets the bracket for a user
// Preconditions: Receives the user's discord id
// Postconditions: Returns the user's bracket, mongo.ErrNoDocuments if they do not have one, or an error if it occurs
func (s *Store) GetBracket(userID string) (shared.Bracket, error) {
	ctx, cancel := s.withTimeout()
	defer cancel()

	var result shared.Bracket
	err := s.Collections.Brackets.FindOne(ctx, bson.M{"userid": userID, "tournamentid": s.TournamentID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Bracket{}, err
		}
		return shared.Bracket{}, fmt.Errorf("error fetching bracket from db: %w", err)
	}
	if err := result.Selections.Validate(); err != nil {
		return shared.Bracket{}, fmt.Errorf("bracket %s has invalid selections: %w", result.ID, err)
	}
	return result, nil
}

// GetAllBrackets gets every bracket entered in the tournament. Used in leaderboard calculations.
// Brackets with selections that fail validation are logged and skipped so one bad document does not block scoring
func (s *Store) GetAllBrackets() ([]shared.Bracket, error) {
	ctx, cancel := s.withTimeout()
	defer cancel()

	cursor, err := s.Collections.Brackets.Find(ctx, bson.M{"tournamentid": s.TournamentID})
	if err != nil {
		return nil, fmt.Errorf("error fetching brackets from db: %w", err)
	}

	var results []shared.Bracket
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of brackets: %w", err)
	}

	valid := make([]shared.Bracket, 0, len(results))
	for _, b := range results {
		if err := b.Selections.Validate(); err != nil {
			log.Printf("skipping bracket %s for user %s: %v", b.ID, b.UserID, err)
			continue
		}
		valid = append(valid, b)
	}
	return valid, nil
}

// StoreBracket stores a user's bracket in the db
// Preconditions: Receives a Bracket with an id and user id
// Postconditions: Inserts the bracket if it does not exist, otherwise updates it. Returns an error if it occurs
func (s *Store) StoreBracket(bracket shared.Bracket) error {
	if bracket.ID == "" || bracket.UserID == "" {
		return fmt.Errorf("bracket id and user id cannot be empty")
	}
	if bracket.TournamentID == "" {
		bracket.TournamentID = s.TournamentID
	}
	if err := bracket.Selections.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid bracket: %w", err)
	}

	ctx, cancel := s.withTimeout()
	defer cancel()

	// Attempt to find an existing document
	var existing shared.Bracket
	err := s.Collections.Brackets.FindOne(ctx, bson.M{"_id": bracket.ID}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing bracket failed: %w", err)
	}

	// The user currently does not have this bracket stored so we create a new document
	if notFound {
		if _, err := s.Collections.Brackets.InsertOne(ctx, bracket); err != nil {
			return fmt.Errorf("failed to insert new bracket: %w", err)
		}
		return nil
	}

	if _, err := s.Collections.Brackets.UpdateOne(ctx, bson.M{"_id": bracket.ID}, bson.M{"$set": bracket}); err != nil {
		return fmt.Errorf("failed to update existing bracket: %w", err)
	}
	return nil
}

// DeleteBracket removes every bracket the user has in the tournament. Used when a user starts a new bracket
func (s *Store) DeleteBracket(userID string) error {
	ctx, cancel := s.withTimeout()
	defer cancel()

	res, err := s.Collections.Brackets.DeleteMany(ctx, bson.M{"userid": userID, "tournamentid": s.TournamentID})
	if err != nil {
		return fmt.Errorf("failed to delete bracket for user %s: %w", userID, err)
	}
	if res.DeletedCount > 0 {
		log.Printf("deleted %d bracket(s) for user %s", res.DeletedCount, userID)
	}
	return nil
}

// UpdateBracketScores writes the score fields and status of each bracket in one bulk write. Selections are never
// touched so a pick made while scoring runs is not overwritten
func (s *Store) UpdateBracketScores(brackets []shared.Bracket) error {
	if len(brackets) == 0 {
		return nil
	}

	now := time.Now()
	models := make([]mongo.WriteModel, 0, len(brackets))
	for _, b := range brackets {
		update := bson.M{"$set": bson.M{
			"points":       b.Points,
			"correctpicks": b.CorrectPicks,
			"totalpicks":   b.TotalPicks,
			"roundscores":  b.RoundScores,
			"maxpossible":  b.MaxPossible,
			"status":       b.Status,
			"updatedat":    now,
		}}
		models = append(models, mongo.NewUpdateOneModel().SetFilter(bson.M{"_id": b.ID}).SetUpdate(update))
	}

	ctx, cancel := s.withTimeout()
	defer cancel()

	res, err := s.Collections.Brackets.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to write bracket scores: %w", err)
	}
	log.Printf("updated scores for %d bracket(s)", res.MatchedCount)
	return nil
}

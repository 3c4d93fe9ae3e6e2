/* tournament.go
 * Contains the methods for interacting with the tournaments collection. The tournament document holds the field,
 * the official results for all 63 games and the round currently being played
 * Authors: Zachary Bower
 */

package store

import (
	"errors"
	"fmt"
	"log"

	"madness-pool/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetTournament returns the tournament this store was created for
// Preconditions: Receives receiver pointer for Store which contains the tournament id
// Postconditions: Returns the Tournament, mongo.ErrNoDocuments if it has not been created, or an error if it occurs
func (s *Store) GetTournament() (shared.Tournament, error) {
	ctx, cancel := s.withTimeout()
	defer cancel()

	var result shared.Tournament
	err := s.Collections.Tournaments.FindOne(ctx, bson.M{"_id": s.TournamentID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Tournament{}, err
		}
		return shared.Tournament{}, fmt.Errorf("error fetching tournament from db: %w", err)
	}
	return result, nil
}

// StoreTournament inserts or updates the tournament document
// Preconditions: Receives the Tournament. If it has no id the store's tournament id is used
// Postconditions: Inserts the document if it does not exist, otherwise updates it. Returns an error if it occurs
func (s *Store) StoreTournament(tournament shared.Tournament) error {
	if tournament.ID == "" {
		tournament.ID = s.TournamentID
	}
	if tournament.ID != s.TournamentID {
		return fmt.Errorf("tournament %q does not match store tournament %q", tournament.ID, s.TournamentID)
	}

	ctx, cancel := s.withTimeout()
	defer cancel()

	// Attempt to find an existing document
	var existing shared.Tournament
	err := s.Collections.Tournaments.FindOne(ctx, bson.M{"_id": tournament.ID}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing tournament failed: %w", err)
	}

	if notFound {
		log.Printf("creating tournament %s in db", tournament.ID)
		if _, err := s.Collections.Tournaments.InsertOne(ctx, tournament); err != nil {
			return fmt.Errorf("tournament insert failed: %w", err)
		}
		return nil
	}

	update := bson.M{"$set": tournament}
	if _, err := s.Collections.Tournaments.UpdateOne(ctx, bson.M{"_id": tournament.ID}, update); err != nil {
		return fmt.Errorf("tournament update failed: %w", err)
	}
	return nil
}

/* leaderboard.go
 * Contains the methods for interacting with the leaderboard collection
 * Authors: Zachary Bower
 */

package store

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchLeaderboardFromDB returns the leaderboard from the db
// Preconditions: Receives receiver pointer for Store which contains the tournament id
// Postconditions: Returns the stored Leaderboard, mongo.ErrNoDocuments if none has been generated, or an error if it occurs
func (s *Store) FetchLeaderboardFromDB() (Leaderboard, error) {
	ctx, cancel := s.withTimeout()
	defer cancel()

	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(ctx, bson.M{"tournamentid": s.TournamentID}, options.FindOne()).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Leaderboard{}, err
		}
		return Leaderboard{}, fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}
	return res, nil
}

// StoreLeaderboard updates the leaderboard stored in the DB
// Preconditions: Receives receiver pointer for Store and the Leaderboard value to be stored
// Postconditions: Updates the leaderboard collection in Mongo and returns nil, or an error if it occurs
func (s *Store) StoreLeaderboard(leaderboard Leaderboard) error {
	if reflect.DeepEqual(leaderboard, Leaderboard{}) {
		return fmt.Errorf("leaderboard is empty")
	}
	if leaderboard.TournamentID == "" {
		leaderboard.TournamentID = s.TournamentID
	}

	ctx, cancel := s.withTimeout()
	defer cancel()

	// Attempt to find an existing document
	filter := bson.M{"tournamentid": leaderboard.TournamentID}
	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(ctx, filter).Decode(&res)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing record failed: %w", err)
	}

	// Perform insert or update
	log.Printf("updating leaderboard in db (%d entries)", len(leaderboard.Entries))
	if notFound {
		if _, err := s.Collections.Leaderboard.InsertOne(ctx, leaderboard); err != nil {
			return fmt.Errorf("leaderboard insert failed: %w", err)
		}
		return nil
	}

	update := bson.D{{Key: "$set", Value: leaderboard}}
	if _, err = s.Collections.Leaderboard.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("leaderboard update failed: %w", err)
	}
	return nil
}

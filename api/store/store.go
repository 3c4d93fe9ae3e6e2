/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * tournament, brackets and leaderboard. Each of these files contain methods for interacting with that part of the
 * database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

type Collections struct {
	Tournaments *mongo.Collection
	Brackets    *mongo.Collection
	Leaderboard *mongo.Collection
}

type Store struct {
	Client       *mongo.Client
	Database     *mongo.Database
	TournamentID string
	Timeout      time.Duration
	Collections  Collections
}

// Function for initialising Store. Sets the tournament being run and initialises the db connection
// Preconditions: Receives strings containing the following: dbName, mongoURI and tournamentID, and the timeout used for
// each db call (0 uses the default)
// Postconditions: Sets collection values and returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, tournamentID string, timeout time.Duration) (*Store, error) {
	if tournamentID == "" {
		return nil, fmt.Errorf("tournament id cannot be empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	return newStoreFromDatabase(client, client.Database(dbName), tournamentID, timeout), nil
}

func newStoreFromDatabase(client *mongo.Client, db *mongo.Database, tournamentID string, timeout time.Duration) *Store {
	return &Store{
		Client:       client,
		Database:     db,
		TournamentID: tournamentID,
		Timeout:      timeout,
		Collections: Collections{
			Tournaments: db.Collection("tournaments"),
			Brackets:    db.Collection("brackets"),
			Leaderboard: db.Collection("leaderboard"),
		},
	}
}

// withTimeout returns the context used for a single db call
func (s *Store) withTimeout() (context.Context, context.CancelFunc) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

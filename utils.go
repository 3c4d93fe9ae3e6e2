/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"fmt"
	"log"
	"strings"

	"madness-pool/api/api"
	"madness-pool/api/external"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// isURL reports whether a field source should be fetched rather than read from disk
func isURL(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// loadField reads a field from a url or a local file
// Preconditions: Receives the path or url of a yaml or json field document
// Postconditions: Returns the parsed field, or an error if it cannot be read or parsed
func loadField(source string) (external.Field, error) {
	if isURL(source) {
		return external.FetchField(source)
	}
	return external.LoadField(source)
}

// createTournament loads the field and stores a fresh tournament built from it
func createTournament(pool *api.API, source string) error {
	field, err := loadField(source)
	if err != nil {
		return err
	}
	t, err := pool.CreateTournament(field)
	if err != nil {
		return err
	}
	log.Printf("Created tournament %s (%d) with %d teams", t.Name, t.Year, len(t.Teams))
	return nil
}

/* input_processing.go
 * Contains the logic for processing user input and matching it to team names
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveTeamName matches user input to one of the candidate team names.
// Preconditions: receives the raw input and the list of valid names, usually the two teams in a game
// Postconditions: returns the correctly formatted team name, or an error if nothing matches. An exact (case
// insensitive) match wins, otherwise the best ranked fuzzy match is used
func ResolveTeamName(input string, candidates []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("no team name given")
	}

	lookup := make(map[string]string)
	var candidatesLower []string
	for _, name := range candidates {
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		lookup[lower] = name
		candidatesLower = append(candidatesLower, lower)
	}

	lowerInput := strings.ToLower(input)
	if name, ok := lookup[lowerInput]; ok {
		return name, nil
	}

	fuzzyResults := fuzzy.RankFind(lowerInput, candidatesLower)
	if len(fuzzyResults) == 0 {
		return "", fmt.Errorf("%q does not match any of: %s", input, strings.Join(candidates, ", "))
	}
	best := fuzzyResults[0]
	for _, r := range fuzzyResults[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return lookup[best.Target], nil
}

// MatchTeamName only accepts input that names one of the candidates exactly, ignoring case and surrounding spaces.
// Used where a near miss must not be guessed at, such as recording official results
func MatchTeamName(input string, candidates []string) (string, error) {
	input = strings.TrimSpace(input)
	for _, name := range candidates {
		if name != "" && strings.EqualFold(input, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%q does not exactly match any of: %s", input, strings.Join(candidates, ", "))
}

/* generator.go
 * Builds the 63 game, 6 round bracket for a 64 team field
 * Authors: Zachary Bower
 */

package bracket

import (
	"fmt"

	"madness-pool/api/shared"
)

// SeedPairings is the order round 1 games are played within a region. The first seed of each pair is TeamA
var SeedPairings = [8][2]int{
	{1, 16},
	{8, 9},
	{5, 12},
	{4, 13},
	{6, 11},
	{3, 14},
	{7, 10},
	{2, 15},
}

// Generate creates every game of the tournament from the field.
// Preconditions: receives the 64 teams, exactly one per region and seed
// Postconditions: returns the 63 games ordered by id. Round 1 games have both teams set, later rounds are empty and
// are filled in by PropagateWinner. Returns a *DataIntegrityError if a team is missing, duplicated or has an
// unknown region or seed
func Generate(teams []shared.Team) ([]shared.Game, error) {
	field, err := indexField(teams)
	if err != nil {
		return nil, err
	}

	games := make([]shared.Game, 0, shared.NumGames)

	// Round 1
	gameID := 1
	for _, region := range shared.Regions {
		for _, pair := range SeedPairings {
			high, ok := field[region][pair[0]]
			if !ok {
				return nil, &DataIntegrityError{GameID: gameID, Reason: fmt.Sprintf("no team for %s seed %d", region, pair[0])}
			}
			low, ok := field[region][pair[1]]
			if !ok {
				return nil, &DataIntegrityError{GameID: gameID, Reason: fmt.Sprintf("no team for %s seed %d", region, pair[1])}
			}
			games = append(games, shared.Game{
				GameID: gameID,
				Round:  1,
				Region: region,
				TeamA:  high.Name,
				TeamB:  low.Name,
			})
			gameID++
		}
	}

	// Rounds 2-6. Region is inherited from the slot A feeder so it follows the feed graph, the Final Four and
	// Championship games are played between regions and have none
	for round := 2; round <= shared.NumRounds; round++ {
		first, last, _ := shared.GameIDRange(round)
		for id := first; id <= last; id++ {
			game := shared.Game{GameID: id, Round: round}
			if round <= 4 {
				feeder, _, _ := Feeders(id)
				game.Region = games[feeder-1].Region
			}
			games = append(games, game)
		}
	}

	return games, nil
}

// indexField checks the field and returns it keyed by region then seed
func indexField(teams []shared.Team) (map[shared.Region]map[int]shared.Team, error) {
	field := make(map[shared.Region]map[int]shared.Team, len(shared.Regions))
	for _, r := range shared.Regions {
		field[r] = make(map[int]shared.Team, shared.TeamsPerRegion)
	}

	names := make(map[string]bool, len(teams))
	for _, team := range teams {
		seeds, ok := field[team.Region]
		if !ok {
			return nil, &DataIntegrityError{Reason: fmt.Sprintf("team %q has unknown region %q", team.Name, team.Region)}
		}
		if team.Seed < 1 || team.Seed > shared.TeamsPerRegion {
			return nil, &DataIntegrityError{Reason: fmt.Sprintf("team %q has invalid seed %d", team.Name, team.Seed)}
		}
		if team.Name == "" {
			return nil, &DataIntegrityError{Reason: fmt.Sprintf("%s seed %d has no name", team.Region, team.Seed)}
		}
		if existing, ok := seeds[team.Seed]; ok {
			return nil, &DataIntegrityError{Reason: fmt.Sprintf("%s seed %d assigned to both %q and %q", team.Region, team.Seed, existing.Name, team.Name)}
		}
		if names[team.Name] {
			return nil, &DataIntegrityError{Reason: fmt.Sprintf("team %q appears more than once", team.Name)}
		}
		names[team.Name] = true
		seeds[team.Seed] = team
	}
	return field, nil
}

/* data_generator.go
 * Generates fields, played out tournaments and random brackets for tests
 * Authors: Zachary Bower
 */

package testutil

import (
	"fmt"
	"time"

	"madness-pool/api/bracket"
	"madness-pool/api/shared"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

type DataGenerator struct {
	faker *gofakeit.Faker
}

// NewDataGenerator creates a generator. A seed of 0 uses the current time
func NewDataGenerator(seed int64) *DataGenerator {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return &DataGenerator{faker: gofakeit.New(uint64(s))}
}

// Field returns a predictable 64 team field named "<Region> <Seed>"
func Field() []shared.Team {
	teams := make([]shared.Team, 0, shared.NumTeams)
	for _, region := range shared.Regions {
		for seed := 1; seed <= shared.TeamsPerRegion; seed++ {
			teams = append(teams, shared.Team{
				Name:   fmt.Sprintf("%s %d", region, seed),
				Seed:   seed,
				Region: region,
			})
		}
	}
	return teams
}

// TeamName returns the name Field gives a region and seed
func TeamName(region shared.Region, seed int) string {
	return fmt.Sprintf("%s %d", region, seed)
}

// Games returns the generated game list for Field
func Games() []shared.Game {
	games, err := bracket.Generate(Field())
	if err != nil {
		panic(err)
	}
	return games
}

// RandomField returns a field with generated school names. Names are unique
func (g *DataGenerator) RandomField() []shared.Team {
	used := make(map[string]bool)
	teams := make([]shared.Team, 0, shared.NumTeams)
	for _, region := range shared.Regions {
		for seed := 1; seed <= shared.TeamsPerRegion; seed++ {
			name := g.faker.City() + " " + g.faker.Noun()
			for used[name] {
				name = fmt.Sprintf("%s %s", name, g.faker.Numerify("##"))
			}
			used[name] = true
			teams = append(teams, shared.Team{Name: name, Seed: seed, Region: region})
		}
	}
	return teams
}

// PlayOut decides every game up to and including throughRound with a random winner
func (g *DataGenerator) PlayOut(games []shared.Game, throughRound int) []shared.Game {
	out := games
	for round := 1; round <= throughRound && round <= shared.NumRounds; round++ {
		first, last, _ := shared.GameIDRange(round)
		for id := first; id <= last; id++ {
			game := out[id-1]
			winner := game.TeamA
			if g.faker.Bool() {
				winner = game.TeamB
			}
			next, err := bracket.PropagateWinner(out, id, round, winner)
			if err != nil {
				panic(err)
			}
			out = next
		}
	}
	return out
}

// Bracket returns a complete, submitted bracket with random picks
func (g *DataGenerator) Bracket(games []shared.Game) shared.Bracket {
	picked := g.PlayOut(games, shared.NumRounds)
	return shared.Bracket{
		ID:         uuid.NewString(),
		Name:       g.faker.Username() + "'s bracket",
		UserID:     g.faker.Numerify("##################"),
		Username:   g.faker.Username(),
		Status:     shared.StatusSubmitted,
		Selections: bracket.SelectionsFromGames(picked),
		Rounds:     bracket.GroupByRound(picked),
	}
}

// Number returns a random int in [min, max]
func (g *DataGenerator) Number(min int, max int) int {
	return g.faker.Number(min, max)
}

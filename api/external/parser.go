/* parser.go
 * Contains the logic used to parse a field document and load it from disk
 * Authors: Zachary Bower
 */

package external

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"madness-pool/api/shared"

	"gopkg.in/yaml.v3"
)

// ParseField decodes a field document and normalises the teams
// Preconditions: Receives the raw document and its format ("json", otherwise YAML is assumed)
// Postconditions: Returns the Field with regions in their canonical form and each team's year filled in, or an error if
// the document cannot be decoded or a team has an unknown region, a seed outside 1-16 or no name
func ParseField(data []byte, format string) (Field, error) {
	var field Field
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &field); err != nil {
			return Field{}, fmt.Errorf("error decoding field json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &field); err != nil {
			return Field{}, fmt.Errorf("error decoding field yaml: %w", err)
		}
	}

	if len(field.Teams) == 0 {
		return Field{}, fmt.Errorf("field contains no teams")
	}
	for i, team := range field.Teams {
		team.Name = strings.TrimSpace(team.Name)
		if team.Name == "" {
			return Field{}, fmt.Errorf("team %d has no name", i+1)
		}
		region, err := shared.ParseRegion(string(team.Region))
		if err != nil {
			return Field{}, fmt.Errorf("team %q: %w", team.Name, err)
		}
		if team.Seed < 1 || team.Seed > shared.TeamsPerRegion {
			return Field{}, fmt.Errorf("team %q has invalid seed %d", team.Name, team.Seed)
		}
		team.Region = region
		if team.Year == 0 {
			team.Year = field.Year
		}
		field.Teams[i] = team
	}
	return field, nil
}

// LoadField reads a field document from disk. The format is taken from the file extension
func LoadField(path string) (Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Field{}, fmt.Errorf("error reading field file: %w", err)
	}
	return ParseField(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

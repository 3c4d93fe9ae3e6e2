/* parser_test.go
 * Contains unit tests for parser.go
 * Authors: Zachary Bower
 */

package external

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"madness-pool/api/bracket"
	"madness-pool/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region LoadField tests

func TestLoadField_SampleField(t *testing.T) {
	field, err := LoadField(filepath.Join("testdata", "field_2025.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "March Madness 2025", field.Name)
	assert.Equal(t, 2025, field.Year)
	assert.Equal(t, time.Date(2025, 3, 20, 16, 15, 0, 0, time.UTC), field.Deadline.UTC())
	assert.Len(t, field.RoundNames, shared.NumRounds)
	require.Len(t, field.Teams, shared.NumTeams)

	assert.Equal(t, "Duke", field.Teams[0].Name)
	assert.Equal(t, shared.East, field.Teams[0].Region)
	assert.Equal(t, 2025, field.Teams[0].Year)

	// The sample field builds a full bracket
	games, err := bracket.Generate(field.Teams)
	require.NoError(t, err)
	assert.Equal(t, "Duke", games[0].TeamA)
	assert.Equal(t, "Mount St. Mary's", games[0].TeamB)
}

func TestLoadField_MissingFile(t *testing.T) {
	_, err := LoadField(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading field file")
}

func TestLoadField_JSONByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.json")
	doc := `{"name":"Test","year":2024,"teams":[{"name":"UConn","seed":1,"region":"East"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	field, err := LoadField(path)
	require.NoError(t, err)
	assert.Equal(t, "UConn", field.Teams[0].Name)
	assert.Equal(t, 2024, field.Teams[0].Year)
}

// endregion

// region ParseField tests

func TestParseField_NormalisesRegion(t *testing.T) {
	doc := []byte("name: Test\nyear: 2025\nteams:\n  - {name: '  Houston ', seed: 1, region: MIDWEST}\n")

	field, err := ParseField(doc, "yaml")
	require.NoError(t, err)
	assert.Equal(t, shared.Midwest, field.Teams[0].Region)
	assert.Equal(t, "Houston", field.Teams[0].Name)
}

func TestParseField_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "teams: [\n"},
		{"no teams", "name: Empty\n"},
		{"unknown region", "teams:\n  - {name: A, seed: 1, region: North}\n"},
		{"seed too high", "teams:\n  - {name: A, seed: 17, region: East}\n"},
		{"seed zero", "teams:\n  - {name: A, seed: 0, region: East}\n"},
		{"missing name", "teams:\n  - {seed: 1, region: East}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseField([]byte(tt.doc), "yaml")
			assert.Error(t, err)
		})
	}
}

func TestParseField_InvalidJSON(t *testing.T) {
	_, err := ParseField([]byte("{"), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding field json")
}

// endregion

/* models.go
 * This file contains the models used by the external package when loading the tournament field
 * Authors: Zachary Bower
 */

package external

import (
	"time"

	"madness-pool/api/shared"
)

// Field is the document an admin provides to create a tournament. It can be a local YAML/JSON file or a URL
type Field struct {
	Name       string        `yaml:"name" json:"name"`
	Year       int           `yaml:"year" json:"year"`
	Deadline   time.Time     `yaml:"deadline" json:"deadline"`
	RoundNames []string      `yaml:"roundNames,omitempty" json:"roundNames,omitempty"`
	Teams      []shared.Team `yaml:"teams" json:"teams"`
}

package entities

import "github.com/reglet-dev/stitch/internal/domain/values"

// SnapshotKeyPrefix prefixes every persisted snapshot key.
const SnapshotKeyPrefix = "personalization_"

// Snapshot is the persisted shape of a configuration.
type Snapshot struct {
	Selections          map[string]string `json:"selections"`
	PersonalizationText string            `json:"personalizationText"`
	Enabled             bool              `json:"enabled"`
}

// SnapshotKey returns the storage key for a subject.
// Keys are per product, never per cart line.
func SnapshotKey(id values.SubjectID) string {
	return SnapshotKeyPrefix + id.String()
}

// SnapshotOf captures a configuration.
func SnapshotOf(c Configuration) Snapshot {
	return Snapshot{
		PersonalizationText: c.Text,
		Enabled:             c.Enabled,
		Selections:          c.Selections.Clone(),
	}
}

// Configuration converts the snapshot back into a configuration.
func (s Snapshot) Configuration() Configuration {
	return Configuration{
		Text:       s.PersonalizationText,
		Enabled:    s.Enabled,
		Selections: Selections(s.Selections).Clone(),
	}
}

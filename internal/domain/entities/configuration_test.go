package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

func TestNewConfiguration(t *testing.T) {
	c := MustNewCatalog(CatalogMetadata{}, embroideryGroups())

	cfg := NewConfiguration(c)

	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.Text)
	assert.Equal(t, c.Defaults(), cfg.Selections)
}

func TestConfiguration_HasText(t *testing.T) {
	assert.False(t, Configuration{}.HasText())
	assert.False(t, Configuration{Text: "   "}.HasText())
	assert.True(t, Configuration{Text: " Ava "}.HasText())
}

func TestConfiguration_CloneIsIndependent(t *testing.T) {
	cfg := Configuration{Text: "Ava", Selections: Selections{"color": "Gold"}}

	clone := cfg.Clone()
	clone.Selections["color"] = "Navy"

	assert.Equal(t, "Gold", cfg.Selections["color"])
	assert.False(t, cfg.Equal(clone))
	assert.True(t, cfg.Equal(cfg.Clone()))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	cfg := Configuration{Text: "Ava", Enabled: true, Selections: Selections{"color": "Gold", "font": "Script"}}

	data, err := json.Marshal(SnapshotOf(cfg))
	require.NoError(t, err)
	assert.JSONEq(t, `{"selections":{"color":"Gold","font":"Script"},"personalizationText":"Ava","enabled":true}`, string(data))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.True(t, cfg.Equal(snap.Configuration()))
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "personalization_123", SnapshotKey(values.MustNewSubjectID("123")))
}

func TestAddonPlan_WithQuantity(t *testing.T) {
	plan := AddonPlan{
		Properties: map[string]string{PropertyEmbroideryName: `"Ava", Gold`},
		Lines: []AddonLine{
			{VariantID: "40001", Group: "color", Value: "Gold", Quantity: 1},
		},
	}

	scaled := plan.WithQuantity(3)

	assert.Equal(t, 3, scaled.Lines[0].Quantity)
	assert.Equal(t, 1, plan.Lines[0].Quantity, "original plan is not modified")
	assert.False(t, plan.Equal(scaled))
	assert.True(t, plan.Equal(plan.WithQuantity(1)))
	assert.True(t, AddonPlan{}.IsEmpty())
	assert.False(t, plan.IsEmpty())
}

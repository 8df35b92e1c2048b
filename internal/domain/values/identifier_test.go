package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubjectID(t *testing.T) {
	id, err := NewSubjectID("  gid-123 ")
	require.NoError(t, err)
	assert.Equal(t, "gid-123", id.String())
	assert.True(t, id.Equals(MustNewSubjectID("gid-123")))

	for _, bad := range []string{"", "   "} {
		_, err := NewSubjectID(bad)
		assert.Error(t, err, "input %q", bad)
	}
	assert.True(t, SubjectID{}.IsEmpty())
	assert.Panics(t, func() { MustNewSubjectID("") })
}

func TestSubjectID_JSON(t *testing.T) {
	data, err := json.Marshal(MustNewSubjectID("p-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `"p-1"`, string(data))

	var id SubjectID
	require.NoError(t, json.Unmarshal([]byte(`"p-2"`), &id))
	assert.Equal(t, "p-2", id.String())

	assert.Error(t, json.Unmarshal([]byte(`""`), &id))
	assert.Error(t, json.Unmarshal([]byte(`42`), &id))
}

func TestNewLineReference(t *testing.T) {
	ref, err := NewLineReference("40001:abc")
	require.NoError(t, err)
	assert.Equal(t, "40001:abc", ref.String())
	assert.False(t, ref.IsEmpty())

	_, err = NewLineReference(" ")
	assert.Error(t, err)
	assert.True(t, LineReference{}.IsEmpty())
}

func TestSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.False(t, a.IsZero())
	assert.NotEqual(t, a.String(), b.String())

	valid := "123e4567-e89b-12d3-a456-426614174000"
	id, err := ParseSessionID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())
	assert.Equal(t, id, MustParseSessionID(valid))

	_, err = ParseSessionID("not-a-uuid")
	assert.Error(t, err)
	assert.True(t, SessionID{}.IsZero())
}

package filesystem

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

func TestSessionStorage_SharedAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	session := values.NewSessionID()

	writer := NewSessionStorage(dir, session, 0)
	require.NoError(t, writer.SetItem("personalization_1", `{"enabled":true}`))

	reader := NewSessionStorage(dir, session, 0)
	v, ok, err := reader.GetItem("personalization_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"enabled":true}`, v)

	other := NewSessionStorage(dir, values.NewSessionID(), 0)
	_, ok, err = other.GetItem("personalization_1")
	require.NoError(t, err)
	assert.False(t, ok, "sessions are isolated")
}

func TestSessionStorage_RemoveAndClear(t *testing.T) {
	s := NewSessionStorage(t.TempDir(), values.NewSessionID(), 0)

	require.NoError(t, s.RemoveItem("missing"))
	require.NoError(t, s.SetItem("a", "1"))
	require.NoError(t, s.SetItem("b", "2"))
	require.NoError(t, s.RemoveItem("a"))

	_, ok, _ := s.GetItem("a")
	assert.False(t, ok)
	_, ok, _ = s.GetItem("b")
	assert.True(t, ok)

	require.NoError(t, s.Clear())
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, s.Clear())
}

func TestSessionStorage_Quota(t *testing.T) {
	s := NewSessionStorage(t.TempDir(), values.NewSessionID(), 8)

	require.NoError(t, s.SetItem("k", "1234"))
	assert.ErrorIs(t, s.SetItem("k2", "12345"), ports.ErrQuotaExceeded)

	_, ok, _ := s.GetItem("k2")
	assert.False(t, ok, "rejected writes leave the file untouched")
}

func TestSessionStorage_CorruptFile(t *testing.T) {
	s := NewSessionStorage(t.TempDir(), values.NewSessionID(), 0)
	require.NoError(t, s.SetItem("k", "v"))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{broken"), 0o600))

	_, _, err := s.GetItem("k")
	assert.Error(t, err)
}

func TestDefaultDir(t *testing.T) {
	assert.Contains(t, DefaultDir(), "stitch")
}

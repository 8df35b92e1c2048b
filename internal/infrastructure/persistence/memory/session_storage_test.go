package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

func TestSessionStorage_SetGetRemove(t *testing.T) {
	s := NewSessionStorage(values.NewSessionID(), 0)

	_, ok, err := s.GetItem("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem("k", "v1"))
	require.NoError(t, s.SetItem("k", "v2"))
	v, ok, err := s.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.RemoveItem("k"))
	require.NoError(t, s.RemoveItem("k"))
	_, ok, _ = s.GetItem("k")
	assert.False(t, ok)
}

func TestSessionStorage_Quota(t *testing.T) {
	s := NewSessionStorage(values.NewSessionID(), 10)

	require.NoError(t, s.SetItem("key", "1234567"))
	assert.ErrorIs(t, s.SetItem("other", "x"), ports.ErrQuotaExceeded)

	require.NoError(t, s.SetItem("key", "1"), "replacing frees the old value")
	require.NoError(t, s.SetItem("k2", "12"))

	require.NoError(t, s.RemoveItem("key"))
	require.NoError(t, s.SetItem("k3", "1234"))
}

func TestSessionStorage_Disabled(t *testing.T) {
	session := values.NewSessionID()
	s := NewSessionStorage(session, 0)
	s.Disable()

	_, _, err := s.GetItem("k")
	assert.ErrorIs(t, err, ports.ErrStorageDisabled)
	assert.ErrorIs(t, s.SetItem("k", "v"), ports.ErrStorageDisabled)
	assert.ErrorIs(t, s.RemoveItem("k"), ports.ErrStorageDisabled)
	assert.Equal(t, session, s.Session())
}

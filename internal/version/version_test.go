package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.String())
	assert.True(t, strings.HasPrefix(info.Full(), Version+" ("+Commit+")"))
	assert.Contains(t, info.Platform, "/")
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "stitch/"+Version, UserAgent())
}

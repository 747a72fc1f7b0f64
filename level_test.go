package daterr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golift.io/daterr"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	for name, want := range map[string]daterr.Level{
		"DEBUG":    daterr.LevelDebug,
		"debug":    daterr.LevelDebug,
		"":         daterr.LevelInfo,
		" info ":   daterr.LevelInfo,
		"WARNING":  daterr.LevelWarning,
		"warn":     daterr.LevelWarning,
		"Error":    daterr.LevelError,
		"CRITICAL": daterr.LevelCritical,
	} {
		got, err := daterr.ParseLevel(name)
		assert.NoError(err, "level name %q should parse", name)
		assert.Equal(want, got, "level name %q", name)
	}

	_, err := daterr.ParseLevel("shouting")
	assert.ErrorIs(err, daterr.ErrBadLevel)
}

func TestLevelName(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("DEBUG", daterr.LevelName(daterr.LevelDebug))
	assert.Equal("DEBUG", daterr.LevelName(daterr.LevelDebug+1))
	assert.Equal("INFO", daterr.LevelName(daterr.LevelInfo))
	assert.Equal("WARNING", daterr.LevelName(daterr.LevelWarning))
	assert.Equal("ERROR", daterr.LevelName(daterr.LevelError))
	assert.Equal("CRITICAL", daterr.LevelName(daterr.LevelCritical))
	assert.Equal("CRITICAL", daterr.LevelName(daterr.LevelCritical+8))
}

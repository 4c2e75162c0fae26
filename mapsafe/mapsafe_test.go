package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"speed":        160,
		"length_scale": 1,
		"pitch":        42.0,
		"voice":        "en-us",
		"enabled":      true,
		"tags":         []string{"a"},
	}

	assert.Equal(t, 160, Get(m, "speed", 0))
	assert.Equal(t, 1.0, Get(m, "length_scale", 0.0))
	assert.Equal(t, 42, Get(m, "pitch", 0))
	assert.Equal(t, "en-us", Get(m, "voice", "en"))
	assert.True(t, Get(m, "enabled", false))
	assert.Equal(t, []string{"a"}, Get(m, "tags", []string(nil)))

	assert.Equal(t, "en", Get(m, "missing", "en"))
	assert.Equal(t, 7, Get(m, "voice", 7))
	assert.Equal(t, "en", Get[string](nil, "voice", "en"))
}

// Copyright (c) 2026 Palmares. All rights reserved.

package titlenorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openscreen/palmares/pkg/titlenorm"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "The Godfather", "the godfather"},
		{"winner_asterisk", "Cabaret*", "cabaret"},
		{"footnote_reference", "Wings[1]", "wings"},
		{"dagger_marker", "Sunrise†", "sunrise"},
		{"accents", "Les Misérables", "les miserables"},
		{"whitespace_runs", "  8½   Weeks ", "8½ weeks"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titlenorm.Key(tt.input))
		})
	}
}

func TestStripMarkers(t *testing.T) {
	assert.Equal(t, "Parasite", titlenorm.StripMarkers("Parasite *[2]"))
	assert.Equal(t, "All Quiet", titlenorm.StripMarkers("All Quiet[note 1]"))
}

func TestEqual(t *testing.T) {
	assert.True(t, titlenorm.Equal("AMÉLIE", "amelie"))
	assert.True(t, titlenorm.Equal("The Artist*", "The Artist"))
	assert.False(t, titlenorm.Equal("Rebecca", "Rope"))
}

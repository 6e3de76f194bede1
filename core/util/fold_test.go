package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		substr string
		want   bool
	}{
		{"empty substring", "EventBot Elite #45", "", true},
		{"lower query", "EventBot Elite #45", "event", true},
		{"upper query", "EventBot Elite #45", "ELITE", true},
		{"mixed query", "IndustrialBot X #78", "bOt x", true},
		{"number", "ServiceBot Pro #123", "#123", true},
		{"no match", "ServiceBot Pro #123", "Event", false},
		{"longer than s", "Bot", "Bots", false},
		{"decomposed accent", "Cafe\u0301 Bot", "CAF\u00c9", true},
		{"sharp s", "Straße Bot", "STRASSE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.Contains(FoldString(tt.s), FoldString(tt.substr)))
		})
	}
}

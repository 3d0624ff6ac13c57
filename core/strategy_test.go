package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Strategy
	}{
		{"empty", "", Immediate},
		{"short", "print(1)", Immediate},
		{"at threshold", strings.Repeat("a", 5000), Immediate},
		{"just above threshold", strings.Repeat("a", 5001), Deferred},
		{"large", strings.Repeat("a", 12000), Deferred},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectStrategy(tt.text))
		})
	}
}

func TestSelectStrategyCountsCharactersNotBytes(t *testing.T) {
	// 5000 three-byte characters stay on the immediate path.
	text := strings.Repeat("€", 5000)
	assert.Greater(t, len(text), DeferThreshold)
	assert.Equal(t, Immediate, SelectStrategy(text))

	assert.Equal(t, Deferred, SelectStrategy(text+"€"))
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "immediate", Immediate.String())
	assert.Equal(t, "deferred", Deferred.String())
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  string
	}{
		{name: "zero is plural", count: 0, want: "readings"},
		{name: "one is singular", count: 1, want: "reading"},
		{name: "many is plural", count: 12, want: "readings"},
		{name: "negative is plural", count: -1, want: "readings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pluralize(tt.count, "reading", "readings"))
		})
	}
}

func TestCountNoun(t *testing.T) {
	assert.Equal(t, "1 reading", CountNoun(1, "reading", "readings"))
	assert.Equal(t, "0 readings", CountNoun(0, "reading", "readings"))
	assert.Equal(t, "3 issues", CountNoun(3, "issue", "issues"))
}

// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serg350/yamdb-final/pkg/slug"
)

/*
TestFrom verifies slug derivation from category and genre names.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Books", "books"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Culture", "cafe-culture"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"multi_hyphen", "a -- b", "a-b"},
		{"leading_trailing", "  drama  ", "drama"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serg350/yamdb-final/pkg/query"
)

/*
TestStringSlice verifies comma-separated filter parsing.
*/
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "drama", []string{"drama"}},
		{"multiple", "drama,sci-fi", []string{"drama", "sci-fi"}},
		{"spaces_trimmed", " drama , sci-fi ", []string{"drama", "sci-fi"}},
		{"blank_entries_dropped", "drama,,sci-fi,", []string{"drama", "sci-fi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}

// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umutkirgoz/mecra/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline end to end.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "hello world", "hello-world"},
		{"uppercase", "Hello World", "hello-world"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "what's up?", "what-s-up"},
		{"multiple_spaces", "a   b", "a-b"},
		{"leading_trailing", "  trimmed  ", "trimmed"},
		{"digits", "top 10 lists", "top-10-lists"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My Collection", "my-collection"},
		{"Paradigm", "paradigm"},
		{"  Ocean  Heart  ", "ocean-heart"},
		{"Café Noir: Ch.1", "cafe-noir-ch-1"},
		{"Pocong--Season 2!", "pocong-season-2"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

func TestFrom_Deterministic(t *testing.T) {
	assert.Equal(t, slug.From("Naruto Shippuden"), slug.From("Naruto Shippuden"))
}

// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clefworks/partitura/pkg/slug"
)

/*
TestFrom covers the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Czerny Op 299", "czerny-op-299"},
		{"accents_stripped", "Études Célèbres", "etudes-celebres"},
		{"punctuation_collapsed", "Sonata No. 14 — \"Moonlight\"", "sonata-no-14-moonlight"},
		{"leading_trailing_trimmed", "  Preludes  ", "preludes"},
		{"already_clean", "nocturnes", "nocturnes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

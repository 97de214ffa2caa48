// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/pkg/slug"
)

func TestFrom(t *testing.T) {
	cases := map[string]string{
		"Science Fiction":   "science-fiction",
		"  Café -- Noir! ":  "cafe-noir",
		"Rock'n'Roll 1950s": "rock-n-roll-1950s",
		"Фэнтези":           "",
		"":                  "",
	}
	for input, want := range cases {
		assert.Equal(t, want, slug.From(input), input)
	}
}

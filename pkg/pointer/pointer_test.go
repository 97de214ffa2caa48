// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/pkg/pointer"
)

func TestTo(t *testing.T) {
	p := pointer.To(7)
	*p = 8
	assert.Equal(t, 8, *p)
	assert.NotSame(t, pointer.To("a"), pointer.To("a"))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "kept", pointer.Fallback(nil, "kept"))
	assert.Equal(t, "", pointer.Fallback(pointer.To(""), "kept"))
	assert.Equal(t, 3, pointer.Fallback(pointer.To(3), 9))
}

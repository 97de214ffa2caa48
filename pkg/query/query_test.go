// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"drama", "comedy"}, query.StringSlice(" drama, ,comedy "))
}

func TestOptionalInt(t *testing.T) {
	v, err := query.OptionalInt("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = query.OptionalInt("1994")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 1994, *v)

	_, err = query.OptionalInt("nineteen")
	assert.Error(t, err)
}

// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "warn", Format: "json", Writer: &buf})

	logger.Info("dropped")
	logger.Warn("kept", slog.String("k", "v"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logging.New(logging.Options{Format: "text", Writer: &buf}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

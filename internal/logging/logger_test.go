package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(Config{Level: "info"}, &buf)
	require.NoError(t, err)

	logger.Info("document created", zap.Int64("document_id", 7))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "document created", entry["message"])
	assert.Equal(t, float64(7), entry["document_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_TeesToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "bizhub.log")

	logger, err := newLogger(Config{File: path}, &buf)
	require.NoError(t, err)

	logger.Warn("rate limited")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"rate limited"`)
	assert.Contains(t, buf.String(), "rate limited")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

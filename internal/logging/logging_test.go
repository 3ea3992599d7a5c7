package logging_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/logging"
)

func TestNew_WritesFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spendo.log")

	logger, closer := logging.New(logging.Options{Level: slog.LevelInfo, File: path, MaxSizeMB: 1})

	logger.Debug("hidden detail")
	logger.Info("entry created", "no", 7)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `msg="entry created" no=7`)
	assert.NotContains(t, string(data), "hidden detail")
}

func TestNew_NoOutputs(t *testing.T) {
	logger, closer := logging.New(logging.Options{})

	assert.NotPanics(t, func() { logger.Error("dropped") })
	assert.NoError(t, closer.Close())
}

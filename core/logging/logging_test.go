package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFileAndStderr(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	logger, closer, err := New(Options{File: path, Stderr: &stderr})
	require.NoError(t, err)

	logger.Info("run started", "shops", 3)
	logger.Debug("hidden at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "previous run\n")
	require.Contains(t, string(data), "msg=\"run started\" shops=3")
	require.NotContains(t, string(data), "hidden at info level")
	require.Contains(t, stderr.String(), "run started")
}

func TestNewDebug(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := New(Options{Debug: true, Stderr: &stderr})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("fragment details")
	require.Contains(t, stderr.String(), "level=DEBUG")
}

package logger

import (
	"path/filepath"
	"testing"

	"fundwatch/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	log, err := New(cfg)
	require.NoError(t, err)
	log.Info().Msg("default logger works")
}

func TestNew_FileLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "fundwatch.log")
	cfg.LogFormat = "json"

	log, err := New(cfg)
	require.NoError(t, err)
	log.Info().Msg("file logger works")
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "loudest"

	_, err := New(cfg)
	assert.Error(t, err)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(app.EnvConfigPath, "")
	t.Setenv(app.EnvEnvironment, "")
	t.Setenv(app.EnvLogLevel, "")

	cfg, err := loadConfig("", "")
	require.NoError(t, err)
	assert.Nil(t, cfg.API)

	cfg, err = loadConfig("", "dev")
	require.NoError(t, err)
	require.NotNil(t, cfg.Environment)
	assert.Equal(t, "dev", *cfg.Environment)

	_, err = loadConfig("", "staging")
	assert.Error(t, err)

	// 配置文件优先于内置配置
	path := filepath.Join(t.TempDir(), "drip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"environment":"test"}`), 0o600))
	cfg, err = loadConfig(path, "prod")
	require.NoError(t, err)
	assert.Equal(t, "test", *cfg.Environment)
}

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "env", "http-host", "http-port"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

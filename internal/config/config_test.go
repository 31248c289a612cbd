// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigFrom_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interface: wlp3s0\ncommand_timeout: 5s\nnerd_font: true\n"), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "wlp3s0", cfg.Interface)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.True(t, cfg.NerdFont)
	assert.Equal(t, DefaultTool, cfg.Tool)
	assert.Equal(t, DefaultSSIDWidth, cfg.SSIDWidth)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tool: [unterminated"), 0o600))
	_, err := LoadConfigFrom(bad)
	assert.ErrorContains(t, err, "failed to parse")

	narrow := filepath.Join(dir, "narrow.yaml")
	require.NoError(t, os.WriteFile(narrow, []byte("ssid_width: 2\n"), 0o600))
	_, err = LoadConfigFrom(narrow)
	assert.ErrorContains(t, err, "ssid_width")

	level := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(level, []byte("log_level: loud\n"), 0o600))
	_, err = LoadConfigFrom(level)
	assert.ErrorContains(t, err, "log_level")
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Default()
	want.Interface = "wlan1"
	want.CommandTimeout = 12 * time.Second
	require.NoError(t, SaveConfig(want))

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.FileExists(t, path)

	got, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveConfigTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "wm.yaml")

	want := Default()
	want.NerdFont = true
	require.NoError(t, SaveConfigTo(path, want))

	got, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	bad := Default()
	bad.LogLevel = "loud"
	assert.ErrorContains(t, SaveConfigTo(path, bad), "log_level")
}

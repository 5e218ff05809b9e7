package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInitWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "wirectl.toml")
	initOpts = &initOptions{kind: "minimal"}

	cmd := &cobra.Command{}
	err := runInit(cmd, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "minimal"`)
}

func TestRunInitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "wirectl.toml")
	initOpts = &initOptions{kind: "minimal"}

	cmd := &cobra.Command{}
	require.NoError(t, runInit(cmd, nil))

	err := runInit(cmd, nil)
	assert.Error(t, err)

	initOpts.force = true
	initOpts.kind = "checksummed"
	require.NoError(t, runInit(cmd, nil))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "checksummed"`)
}

func TestRunInitUnknownKind(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "wirectl.toml")
	initOpts = &initOptions{kind: "bogus"}

	cmd := &cobra.Command{}
	assert.Error(t, runInit(cmd, nil))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Full Config", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.yaml", `
app:
  env: prod
  log_level: debug
  http_addr: ":9000"
data:
  db_path: data/refdata.db
  seed: true
calculator:
  default_standard: WHO
  batch_workers: 8
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "prod", cfg.App.Env)
		assert.Equal(t, "debug", cfg.App.LogLevel)
		assert.Equal(t, ":9000", cfg.App.HTTPAddr)
		assert.Equal(t, "data/refdata.db", cfg.Data.DBPath)
		assert.True(t, cfg.Data.Seed)
		assert.Equal(t, "WHO", cfg.Calculator.DefaultStandard)
		assert.Equal(t, 8, cfg.Calculator.BatchWorkers)
	})

	t.Run("Defaults Fill Missing Fields", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.yaml", "app:\n  env: dev\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.App.LogLevel)
		assert.Equal(t, ":8642", cfg.App.HTTPAddr)
		assert.Equal(t, "AUTO", cfg.Calculator.DefaultStandard)
		assert.Equal(t, 4, cfg.Calculator.BatchWorkers)
		assert.Empty(t, cfg.Data.ManifestPath)
	})

	t.Run("Include Merge", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "base.yaml", `
app:
  log_level: warn
calculator:
  batch_workers: 2
`)
		path := writeConfig(t, dir, "config.yaml", `
include:
  - base.yaml
calculator:
  default_standard: CDC
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.App.LogLevel)
		assert.Equal(t, 2, cfg.Calculator.BatchWorkers)
		assert.Equal(t, "CDC", cfg.Calculator.DefaultStandard)
	})

	t.Run("Main File Overrides Include", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "base.yaml", "calculator:\n  batch_workers: 2\n")
		path := writeConfig(t, dir, "config.yaml", `
include:
  - base.yaml
calculator:
  batch_workers: 16
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 16, cfg.Calculator.BatchWorkers)
	})

	t.Run("Include Cycle", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "a.yaml", "include: [b.yaml]\n")
		path := writeConfig(t, dir, "b.yaml", "include: [a.yaml]\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Invalid Standard", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.yaml", "calculator:\n  default_standard: NHANES\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "default_standard")
	})

	t.Run("Workers Over Limit", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.yaml", "calculator:\n  batch_workers: 1000\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "batch_workers")
	})

	t.Run("Seed Without DB Path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.yaml", "data:\n  seed: true\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "db_path")
	})

	t.Run("Empty Path", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err) // explicit file must exist

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/media/", cfg.Media.Base)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "text", cfg.Import.Report)
	assert.False(t, cfg.Import.SkipPlugins)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wpmigrate.yaml")
	content := []byte(`
site:
  url: https://refuge.example.org
media:
  base: /assets/
  root: /srv/assets
database:
  driver: postgres
  dsn: postgres://localhost/refuge
import:
  skip_plugins: true
  report: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://refuge.example.org", cfg.Site.URL)
	assert.Equal(t, "/assets/", cfg.Media.Base)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/refuge", cfg.Database.DSN)
	assert.True(t, cfg.Import.SkipPlugins)
	assert.Equal(t, "json", cfg.Import.Report)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WPMIGRATE_DATABASE_DRIVER", "mysql")
	t.Setenv("WPMIGRATE_DATABASE_DSN", "user:pass@/refuge")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "user:pass@/refuge", cfg.Database.DSN)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"bad report", func(c *Config) { c.Import.Report = "xml" }, "unsupported report format"},
		{"empty media base", func(c *Config) { c.Media.Base = "" }, "media.base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Media:    MediaConfig{Base: "/media/"},
				Database: DatabaseConfig{Driver: "sqlite3"},
				Import:   ImportConfig{Report: "text"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

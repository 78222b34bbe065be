package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the migration tool configuration
type Config struct {
	Site     SiteConfig     `mapstructure:"site"`
	Media    MediaConfig    `mapstructure:"media"`
	Database DatabaseConfig `mapstructure:"database"`
	Import   ImportConfig   `mapstructure:"import"`
}

type SiteConfig struct {
	// URL is the legacy WordPress base URL. When empty it is taken
	// from the siteurl option found in the dump.
	URL string `mapstructure:"url"`
}

type MediaConfig struct {
	// Base is the URL path the migrated media is served from.
	Base string `mapstructure:"base"`
	// Root is the filesystem directory backing Base.
	Root string `mapstructure:"root"`
	// UploadsDir is an optional wp-content/uploads directory to
	// bulk-copy into Root during the import.
	UploadsDir string `mapstructure:"uploads_dir"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ImportConfig struct {
	SkipPlugins bool   `mapstructure:"skip_plugins"`
	Flush       bool   `mapstructure:"flush"`
	Report      string `mapstructure:"report"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.url", "")
	v.SetDefault("media.base", "/media/")
	v.SetDefault("media.root", "media")
	v.SetDefault("media.uploads_dir", "")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "wpmigrate.db")
	v.SetDefault("import.skip_plugins", false)
	v.SetDefault("import.flush", false)
	v.SetDefault("import.report", "text")
}

// Load reads the configuration from wpmigrate.yaml (searched in the
// working directory) merged with WPMIGRATE_ environment variables.
// A missing config file is not an error; defaults apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("wpmigrate")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("WPMIGRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values for obvious mistakes.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Import.Report {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported report format %q", c.Import.Report)
	}
	if c.Media.Base == "" {
		return fmt.Errorf("media.base must not be empty")
	}
	return nil
}

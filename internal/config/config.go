package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PLANNER_"

type Config struct {
	DBPath string       `json:"db_path"`
	Log    LogConfig    `json:"log"`
	HTTP   HTTPConfig   `json:"http"`
	Export ExportConfig `json:"export"`
	GCal   GCalConfig   `json:"gcal"`
}

type HTTPConfig struct {
	Addr string `json:"addr"`
}

type ExportConfig struct {
	// Dir is where .ics files are written by the CLI and TUI.
	Dir string `json:"dir"`
}

type GCalConfig struct {
	Calendar       string `json:"calendar"`
	CredentialsDir string `json:"credentials_dir"`
}

// Load reads configuration from path, or from $PLANNER_CONFIG, or from
// ~/.planner/config.yaml when that file exists. PLANNER_* environment
// variables override file values; "__" separates nested keys, e.g.
// PLANNER_LOG__LEVEL=debug. A missing default file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(envPrefix + "CONFIG")
		explicit = path != ""
	}
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".planner", "config.yaml")
		}
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if db := os.Getenv(envPrefix + "DB"); db != "" {
		cfg.DBPath = db
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// SetDefaults fills unset keys and expands a leading "~/" in paths.
func (c *Config) SetDefaults() {
	if c.DBPath == "" {
		c.DBPath = "~/.planner/planner.db"
	}
	c.Log.SetDefaults()
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8000"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.GCal.Calendar == "" {
		c.GCal.Calendar = "Tasks"
	}
	if c.GCal.CredentialsDir == "" {
		c.GCal.CredentialsDir = "~/.config/planner"
	}

	c.DBPath = expandHome(c.DBPath)
	c.Log.File = expandHome(c.Log.File)
	c.Export.Dir = expandHome(c.Export.Dir)
	c.GCal.CredentialsDir = expandHome(c.GCal.CredentialsDir)
}

func (c Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

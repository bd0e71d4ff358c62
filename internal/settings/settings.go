// Package settings loads the optional .confcheck.yaml file that configures
// the confcheck tool itself (not the documents it validates).
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".confcheck.yaml"

// Source kinds.
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// Redis configures the Redis document source.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// HTTP configures the API server.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Settings is the tool configuration.
type Settings struct {
	Format string `yaml:"format"`
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
	Debug  bool   `yaml:"debug"`
	Redis  Redis  `yaml:"redis"`
	HTTP   HTTP   `yaml:"http"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Format: "text",
		Source: SourceFile,
		Dir:    ".",
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "confcheck:",
		},
		HTTP: HTTP{
			Addr: ":8080",
		},
	}
}

// Load reads settings from path on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the values that have a closed set of options.
func (s Settings) Validate() error {
	switch s.Source {
	case SourceFile, SourceRedis:
	default:
		return fmt.Errorf("unsupported source: %q", s.Source)
	}
	if s.Redis.DB < 0 {
		return fmt.Errorf("redis.db must not be negative")
	}
	return nil
}

// Package config loads the ashurbanipalweb configuration: catalog file
// paths, HTTP server settings, and catalog logger verbosity.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration, optionally loaded from a YAML file and
// overridable by the three positional file arguments on the command line.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig names the three catalog files.
type PathsConfig struct {
	Style    string `yaml:"style"`
	Topic    string `yaml:"topic"`
	Metadata string `yaml:"metadata"`
}

// ServerConfig controls the HTTP dispatcher.
type ServerConfig struct {
	Address      string `yaml:"address"`
	DefaultLimit int    `yaml:"default_limit"`
	MaximumLimit int    `yaml:"maximum_limit"`
}

// LoggingConfig controls the catalog logger's verbosity: Level "debug"
// enables debug output; any other value logs at info and above.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			DefaultLimit: 20,
			MaximumLimit: 200,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML configuration file, applying defaults for anything it
// does not set. A missing file is an error; LoadOrDefault is the wrapper
// for "optional file" semantics.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path if non-empty and it exists, otherwise returns
// DefaultConfig(). This is how the CLI treats the config file as optional.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// ApplyPathOverrides overwrites Paths with the three positional CLI
// arguments (style, topic, metadata). An empty argument leaves the
// corresponding path unchanged.
func (c *Config) ApplyPathOverrides(style, topic, metadata string) {
	if style != "" {
		c.Paths.Style = style
	}
	if topic != "" {
		c.Paths.Topic = topic
	}
	if metadata != "" {
		c.Paths.Metadata = metadata
	}
}

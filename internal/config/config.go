package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the declarative description of one server instance, loaded
// once per invocation and never mutated afterwards.
type Config struct {
	// Name identifies the instance; it is used as the container name
	// and as the console prompt.
	Name string `toml:"name"`
	// Host and Port are the published game-port binding.
	Host string `toml:"host"`
	Port int    `toml:"port"`

	Server Server `toml:"server"`
	World  World  `toml:"world"`

	// Datapacks maps a logical datapack name to a source path relative
	// to the datapacks directory next to the config file.
	Datapacks map[string]string `toml:"datapacks"`
}

// Server describes the server flavor to run.
type Server struct {
	Type    string `toml:"type"`
	Version string `toml:"version"`
	// Memory is the JVM memory limit ("5G"); empty means unset.
	Memory string `toml:"memory"`
}

// World describes the world the server should serve.
type World struct {
	Name string `toml:"name"`
	// Seed is the world generation seed; empty means unset.
	Seed        string `toml:"seed"`
	Gamemode    string `toml:"gamemode"`
	Difficulty  string `toml:"difficulty"`
	AllowFlight bool   `toml:"allow-flight"`
}

// Load reads and validates the TOML config at path, filling in
// defaults for omitted fields.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(contents))
}

// Parse decodes a TOML document into a validated Config.
func Parse(contents string) (*Config, error) {
	cfg := Config{
		Host: "0.0.0.0",
		Port: 25565,
		Server: Server{
			Type: "vanilla",
		},
		World: World{
			Name:       "world",
			Gamemode:   "survival",
			Difficulty: "easy",
		},
	}
	if _, err := toml.Decode(contents, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("config is missing the instance name")
	}
	if c.Server.Version == "" {
		return fmt.Errorf("config is missing server.version")
	}
	if !strings.EqualFold(c.Server.Type, "vanilla") {
		return fmt.Errorf("unsupported server type %q", c.Server.Type)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	return nil
}

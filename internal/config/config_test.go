package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse(`
name = "survival"
host = "192.168.1.10"
port = 25570

[server]
type = "vanilla"
version = "1.17.1"
memory = "5G"

[world]
name = "skyblock"
seed = "-163500232"
gamemode = "creative"
difficulty = "hard"
allow-flight = true

[datapacks]
coordinates = "vanillatweaks/coordinates.zip"
`)

	require.NoError(t, err)
	assert.Equal(t, "survival", cfg.Name)
	assert.Equal(t, "192.168.1.10", cfg.Host)
	assert.Equal(t, 25570, cfg.Port)
	assert.Equal(t, "1.17.1", cfg.Server.Version)
	assert.Equal(t, "5G", cfg.Server.Memory)
	assert.Equal(t, "skyblock", cfg.World.Name)
	assert.Equal(t, "-163500232", cfg.World.Seed)
	assert.Equal(t, "creative", cfg.World.Gamemode)
	assert.Equal(t, "hard", cfg.World.Difficulty)
	assert.True(t, cfg.World.AllowFlight)
	assert.Equal(t, map[string]string{"coordinates": "vanillatweaks/coordinates.zip"}, cfg.Datapacks)
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse(`
name = "minimal"

[server]
version = "1.17.1"
`)

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 25565, cfg.Port)
	assert.Equal(t, "vanilla", cfg.Server.Type)
	assert.Empty(t, cfg.Server.Memory)
	assert.Equal(t, "world", cfg.World.Name)
	assert.Empty(t, cfg.World.Seed)
	assert.Equal(t, "survival", cfg.World.Gamemode)
	assert.Equal(t, "easy", cfg.World.Difficulty)
	assert.False(t, cfg.World.AllowFlight)
	assert.Empty(t, cfg.Datapacks)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing name", "[server]\nversion = \"1.17.1\"\n"},
		{"missing server version", "name = \"x\"\n"},
		{"unsupported server type", "name = \"x\"\n[server]\ntype = \"forge\"\nversion = \"1.17.1\"\n"},
		{"port out of range", "name = \"x\"\nport = 70000\n[server]\nversion = \"1.17.1\"\n"},
		{"malformed toml", "name = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.contents)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}

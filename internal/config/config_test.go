package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.HasComputerOnly())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := `
board:
  width: 3
search:
  think_time: 250ms
players:
  - name: Ada
    mark: A
    kind: computer
    difficulty: medium
  - name: Bob
    mark: B
    kind: computer
    difficulty: easy
first_player: random
rounds: 5
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 250*time.Millisecond, cfg.Search.ThinkTime)
	assert.True(t, cfg.Search.Pruning, "keys missing from the file keep their defaults")
	assert.Equal(t, "A", cfg.Players[0].Mark)
	assert.Equal(t, FirstPlayerRandom, cfg.FirstPlayer)
	assert.Equal(t, 5, cfg.Rounds)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tictactoe", cfg.Telemetry.ServiceName)
	assert.True(t, cfg.HasComputerOnly())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board: [1, 2"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"even width", func(c *Config) { c.Board.Width = 4 }, true},
		{"zero width", func(c *Config) { c.Board.Width = 0 }, true},
		{"hard on a wide board", func(c *Config) { c.Board.Width = 5 }, true},
		{"medium on a wide board", func(c *Config) {
			c.Board.Width = 5
			c.Players[1].Difficulty = "medium"
		}, false},
		{"computer without difficulty on a wide board", func(c *Config) {
			c.Board.Width = 5
			c.Players[1].Difficulty = ""
		}, true},
		{"one player", func(c *Config) { c.Players = c.Players[:1] }, true},
		{"same mark", func(c *Config) { c.Players[1].Mark = "X" }, true},
		{"same name", func(c *Config) { c.Players[1].Name = "Player" }, true},
		{"empty mark", func(c *Config) { c.Players[0].Mark = "" }, true},
		{"unknown kind", func(c *Config) { c.Players[0].Kind = "remote" }, true},
		{"unknown difficulty", func(c *Config) { c.Players[1].Difficulty = "brutal" }, true},
		{"unknown first player", func(c *Config) { c.FirstPlayer = "loser" }, true},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"bad redis address", func(c *Config) { c.Events.RedisAddr = "not an address" }, true},
		{"redis address", func(c *Config) { c.Events.RedisAddr = "localhost:6379" }, false},
		{"otlp without endpoint", func(c *Config) {
			c.Telemetry.Exporter = ExporterOTLP
			c.Telemetry.Endpoint = ""
		}, true},
		{"unknown exporter", func(c *Config) { c.Telemetry.Exporter = "jaeger" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

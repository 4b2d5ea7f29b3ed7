// Package config loads the game settings from defaults, an optional YAML
// file and command line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"ctchen222/tictactoe/internal/validator"

	playground "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Who moves first in every game.
const (
	FirstPlayerFirst  = "first"
	FirstPlayerSecond = "second"
	FirstPlayerRandom = "random"
)

// Telemetry exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// MaxHardWidth is the widest board an exhaustive search can finish on.
const MaxHardWidth = 3

type Config struct {
	Board       BoardConfig     `yaml:"board"`
	Search      SearchConfig    `yaml:"search"`
	Players     []PlayerConfig  `yaml:"players" validate:"len=2,unique=Mark,unique=Name,dive"`
	FirstPlayer string          `yaml:"first_player" validate:"oneof=first second random"`
	Rounds      int             `yaml:"rounds" validate:"min=1"`
	Log         LogConfig       `yaml:"log"`
	Events      EventsConfig    `yaml:"events"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
}

type BoardConfig struct {
	Width int `yaml:"width" validate:"min=1,max=15,odd"`
}

type SearchConfig struct {
	Pruning   bool          `yaml:"pruning"`
	ThinkTime time.Duration `yaml:"think_time" validate:"min=0"`
}

type PlayerConfig struct {
	Name       string `yaml:"name" validate:"required,max=32"`
	Mark       string `yaml:"mark" validate:"required,max=3"`
	Kind       string `yaml:"kind" validate:"oneof=human computer"`
	Difficulty string `yaml:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// EventsConfig enables the Redis spectator feed when RedisAddr is set.
type EventsConfig struct {
	RedisAddr string `yaml:"redis_addr" validate:"omitempty,hostname_port"`
	Channel   string `yaml:"channel"`
}

type TelemetryConfig struct {
	Exporter    string `yaml:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint    string `yaml:"endpoint" validate:"required_if=Exporter otlp"`
	ServiceName string `yaml:"service_name" validate:"required"`
}

func init() {
	validator.GetValidator().RegisterStructValidation(hardNeedsSmallBoard, Config{})
}

// Default returns the settings of a classic game: a human playing X against a
// hard computer playing O, human first.
func Default() *Config {
	return &Config{
		Board:  BoardConfig{Width: 3},
		Search: SearchConfig{Pruning: true},
		Players: []PlayerConfig{
			{Name: "Player", Mark: "X", Kind: "human"},
			{Name: "Computer", Mark: "O", Kind: "computer", Difficulty: "hard"},
		},
		FirstPlayer: FirstPlayerFirst,
		Rounds:      1,
		Log:         LogConfig{Level: "warn"},
		Events:      EventsConfig{Channel: "channel:events"},
		Telemetry: TelemetryConfig{
			Exporter:    ExporterNone,
			Endpoint:    "otel-collector:4317",
			ServiceName: "tictactoe",
		},
	}
}

// Load reads the YAML file at path over the defaults. Keys missing from the
// file keep their default value. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and the rules spanning several fields.
func (c *Config) Validate() error {
	if err := validator.GetValidator().Struct(c); err != nil {
		var verrs playground.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid configuration: %w", verrs)
		}
		return fmt.Errorf("failed to validate configuration: %w", err)
	}
	return nil
}

// HasComputerOnly reports whether no human sits at the table.
func (c *Config) HasComputerOnly() bool {
	for _, p := range c.Players {
		if p.Kind == "human" {
			return false
		}
	}
	return true
}

// hardNeedsSmallBoard rejects a hard computer on boards too wide to search
// exhaustively.
func hardNeedsSmallBoard(sl playground.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Board.Width <= MaxHardWidth {
		return
	}
	for i, p := range cfg.Players {
		if p.Kind == "computer" && (p.Difficulty == "" || p.Difficulty == "hard") {
			sl.ReportError(p.Difficulty, fmt.Sprintf("players[%d].difficulty", i), "Difficulty", "hard_width", "")
		}
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ctchen222/tictactoe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsOnlyOverridesExplicitFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-width", "5", "-difficulty", "medium", "-name", "Ann"})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.FirstPlayer = config.FirstPlayerRandom
	opts.apply(cfg)

	assert.Equal(t, 5, cfg.Board.Width)
	assert.Equal(t, "Ann", cfg.Players[0].Name)
	assert.Equal(t, "medium", cfg.Players[1].Difficulty)
	assert.Equal(t, config.FirstPlayerRandom, cfg.FirstPlayer, "unset flags keep the configured value")
	assert.Equal(t, "warn", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-colour", "red"})
	assert.Error(t, err)
}

func TestBuildRoster(t *testing.T) {
	cfg := config.Default()
	roster := buildRoster(cfg, nil, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, roster.Validate())

	seat, ok := roster.HumanSeat()
	require.True(t, ok)
	assert.Equal(t, 0, seat)
	assert.Equal(t, "hard", roster[1].Difficulty)
	assert.NotEqual(t, roster[0].ID, roster[1].ID)
}

func TestRunHumanAgainstComputer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-name", "Ann", "-log-level", "error"}
	err := run(context.Background(), args, strings.NewReader("4\nexit\n"), &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Welcome to tic tac toe.")
	assert.Contains(t, out, "This is how you designate the board cells")
	assert.Contains(t, out, "Ann (X), choose a cell from 0 to 8")
	assert.Contains(t, out, "Computer (O) plays 0.")
}

func TestRunComputerOnlyFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := `
players:
  - name: Ada
    mark: A
    kind: computer
    difficulty: hard
  - name: Bob
    mark: B
    kind: computer
    difficulty: hard
rounds: 2
log:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", path}, strings.NewReader(""), &stdout, &stderr))

	out := stdout.String()
	assert.Equal(t, 2, strings.Count(out, "A draw."))
	assert.Contains(t, out, "Score after 2 games: Ada (A) 0, Bob (B) 0, draws 2")
	assert.NotContains(t, out, "This is how you designate")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-width", "4"}, strings.NewReader(""), &stdout, &stderr)
	assert.Error(t, err)
}

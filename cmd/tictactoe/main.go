package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/console"
	"ctchen222/tictactoe/internal/db"
	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/logger"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/render"
	"ctchen222/tictactoe/internal/repository"
	"ctchen222/tictactoe/internal/room"
	"ctchen222/tictactoe/internal/telemetry"

	"github.com/google/uuid"
)

var version = "dev"

// options are the command line flags. Only flags given explicitly override
// the config file.
type options struct {
	configPath string
	width      int
	difficulty string
	first      string
	name       string
	logLevel   string
	set        map[string]bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&opts.width, "width", game.StandardWidth, "Board width, an odd number")
	fs.StringVar(&opts.difficulty, "difficulty", bot.DifficultyHard, "Computer difficulty: easy, medium or hard")
	fs.StringVar(&opts.first, "first", config.FirstPlayerFirst, "Who opens each game: first, second or random")
	fs.StringVar(&opts.name, "name", "", "Name of the human player")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// apply copies the explicitly set flags onto cfg.
func (o *options) apply(cfg *config.Config) {
	if o.set["width"] {
		cfg.Board.Width = o.width
	}
	if o.set["first"] {
		cfg.FirstPlayer = o.first
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	for i := range cfg.Players {
		p := &cfg.Players[i]
		if o.set["difficulty"] && p.Kind == string(player.KindComputer) {
			p.Difficulty = o.difficulty
		}
	}
	if o.set["name"] {
		for i := range cfg.Players {
			if cfg.Players[i].Kind == string(player.KindHuman) {
				cfg.Players[i].Name = o.name
				break
			}
		}
	}
}

// buildRoster seats the configured players. Humans share one terminal.
func buildRoster(cfg *config.Config, engine *bot.Engine, in io.Reader, out io.Writer) player.Roster {
	terminal := console.NewLineSource(in, out)
	var roster player.Roster
	for i, pc := range cfg.Players {
		p := player.NewPlayer(uuid.NewString(), pc.Name, game.PlayerMark(pc.Mark), player.Kind(pc.Kind))
		if p.IsHuman() {
			p.Source = terminal
		} else {
			p.Difficulty = pc.Difficulty
			p.Source = bot.NewBotMoveSource(engine, pc.Difficulty, cfg.Search.ThinkTime)
		}
		roster[i] = p
	}
	return roster
}

func newPublisher(ctx context.Context, cfg config.EventsConfig) (events.Publisher, error) {
	if cfg.RedisAddr == "" {
		return events.NewLogPublisher(nil), nil
	}
	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	return events.NewRedisPublisher(rdb, cfg.Channel), nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, version, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	// The scoreboard only lives as long as the process.
	conn, err := db.Connect(ctx, db.MemoryDSN)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.InitializeDB(ctx, conn); err != nil {
		return fmt.Errorf("failed to initialize sqlite db: %w", err)
	}

	publisher, err := newPublisher(ctx, cfg.Events)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var engineOpts []bot.Option
	if cfg.Search.Pruning {
		engineOpts = append(engineOpts, bot.WithPruning())
	}
	roster := buildRoster(cfg, bot.NewEngine(engineOpts...), stdin, stdout)

	renderer := render.New(stdout)
	r, err := room.NewRoom(room.RoomConfig{
		Width:       cfg.Board.Width,
		FirstPlayer: cfg.FirstPlayer,
		Rounds:      cfg.Rounds,
	}, roster,
		room.WithPublisher(publisher),
		room.WithScoreRepository(repository.NewScoreRepository(conn)),
		room.WithRenderer(renderer),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Welcome to tic tac toe.")
	if _, ok := roster.HumanSeat(); ok {
		if err := renderer.Help(r.Board()); err != nil {
			return err
		}
	}

	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		stop()
		os.Exit(1)
	}
}

package room

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/render"
	"ctchen222/tictactoe/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")
)

// ErrContractViolation is returned by Run when a computer seat answers with
// something other than a legal move.
var ErrContractViolation = errors.New("move source violated its contract")

// Rules for picking the seat that opens each game.
const (
	FirstPlayerFirst  = "first"
	FirstPlayerSecond = "second"
	FirstPlayerRandom = "random"
)

// RoomConfig holds the rules of a room.
type RoomConfig struct {
	Width       int
	FirstPlayer string
	// Rounds is the number of games a roster without humans plays before Run
	// returns. Zero means one.
	Rounds int
}

// Option configures optional collaborators of a Room.
type Option func(*Room)

// WithPublisher sends game events to p instead of the debug log.
func WithPublisher(p events.Publisher) Option {
	return func(r *Room) {
		r.publisher = p
	}
}

// WithScoreRepository records every finished game and prints the running score.
func WithScoreRepository(repo repository.ScoreRepository) Option {
	return func(r *Room) {
		r.scores = repo
	}
}

// WithRenderer sets where the board and results are drawn. Without it nothing
// is drawn.
func WithRenderer(renderer *render.Renderer) Option {
	return func(r *Room) {
		r.renderer = renderer
	}
}

// Room coordinates the turns of two players on one board. A room plays any
// number of games in a row; each game gets a new ID and a fresh board.
type Room struct {
	ID     string
	cfg    RoomConfig
	roster player.Roster

	mu     sync.Mutex
	board  *game.Board
	gameID string
	turn   int
	moves  int

	publisher events.Publisher
	scores    repository.ScoreRepository
	renderer  *render.Renderer

	moveCounter metric.Int64Counter
	gameCounter metric.Int64Counter
}

// NewRoom creates a new room with an empty board and the opening seat chosen
// by cfg.FirstPlayer.
func NewRoom(cfg RoomConfig, roster player.Roster, opts ...Option) (*Room, error) {
	if err := roster.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	board, err := game.NewBoard(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	switch cfg.FirstPlayer {
	case "", FirstPlayerFirst, FirstPlayerSecond, FirstPlayerRandom:
	default:
		return nil, fmt.Errorf("failed to create room: unknown first player rule %q", cfg.FirstPlayer)
	}

	r := &Room{
		ID:        uuid.NewString(),
		cfg:       cfg,
		roster:    roster,
		board:     board,
		gameID:    uuid.NewString(),
		publisher: events.NewLogPublisher(nil),
		renderer:  render.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.turn = r.firstSeat()

	r.moveCounter, _ = meter.Int64Counter("room.moves",
		metric.WithDescription("Marks placed on a board"),
	)
	r.gameCounter, _ = meter.Int64Counter("room.games",
		metric.WithDescription("Games finished with a win or a draw"),
	)
	return r, nil
}

// ApplyMove places mark on index of the current board. It does not pass the
// turn; Run does that after a seat's move.
func (r *Room) ApplyMove(index int, mark game.PlayerMark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyMoveLocked(index, mark)
}

func (r *Room) applyMoveLocked(index int, mark game.PlayerMark) error {
	if game.Evaluate(r.board).IsTerminal() {
		return game.ErrGameOver
	}
	if err := r.board.Place(index, mark); err != nil {
		return err
	}
	r.moves++
	return nil
}

// Run plays games until a human exits, a roster without humans has played
// its rounds, or ctx is cancelled. Invalid input from a human is reported and
// asked again; a computer seat breaking its contract stops the room with
// ErrContractViolation.
func (r *Room) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "room.Run", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("board.width", r.cfg.Width),
	))
	defer span.End()

	slog.InfoContext(ctx, "Room started", "room.id", r.ID, "width", r.cfg.Width)
	r.announceGame(ctx)

	played := 0
	for {
		outcome, exit, err := r.playGame(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Room stopped")
			return err
		}
		if exit {
			slog.InfoContext(ctx, "Player left the room", "room.id", r.ID, "games", played)
			return nil
		}

		r.finishGame(ctx, outcome)
		played++
		span.SetAttributes(attribute.Int("room.games", played))

		seat, ok := r.roster.HumanSeat()
		if !ok {
			if played >= max(r.cfg.Rounds, 1) {
				return nil
			}
			r.Reset(ctx)
			continue
		}

		again, err := r.askRematch(ctx, seat)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Room stopped")
			return err
		}
		if !again {
			slog.InfoContext(ctx, "Player left the room", "room.id", r.ID, "games", played)
			return nil
		}
	}
}

// playGame asks the seats for moves until the board is decided. The outcome
// is re-evaluated after every placement. exit is set when a human leaves
// mid-game.
func (r *Room) playGame(ctx context.Context) (outcome game.Outcome, exit bool, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.Outcome{}, false, err
		}
		if out := r.Outcome(); out.IsTerminal() {
			return out, false, nil
		}

		seat := r.currentSeat()
		p := r.roster[seat]
		if p.IsHuman() {
			r.draw(ctx, r.renderer.Board(r.Board()))
		}

		req, err := p.Source.NextAction(ctx, r.view(seat, false))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return game.Outcome{}, false, ctxErr
			}
			if !p.IsHuman() {
				return game.Outcome{}, false, r.contractViolation(p, err)
			}
			slog.DebugContext(ctx, "Rejected input", "player.id", p.ID, "error", err)
			r.draw(ctx, r.renderer.Error(err))
			continue
		}

		res, err := r.handleRequest(ctx, seat, req)
		if err != nil {
			return game.Outcome{}, false, err
		}
		if res == turnExit {
			return game.Outcome{}, true, nil
		}
	}
}

// askRematch waits for the human in seat to restart or exit after a game.
func (r *Room) askRematch(ctx context.Context, seat int) (bool, error) {
	p := r.roster[seat]
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		req, err := p.Source.NextAction(ctx, r.view(seat, true))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			r.draw(ctx, r.renderer.Error(err))
			continue
		}

		switch req.Action {
		case player.ActionHelp:
			r.draw(ctx, r.renderer.Help(r.Board()))
		case player.ActionExit:
			return false, nil
		case player.ActionRestart:
			r.Reset(ctx)
			return true, nil
		default:
			r.draw(ctx, r.renderer.Error(fmt.Errorf("%w, type 'restart' or 'exit'", game.ErrGameOver)))
		}
	}
}

func (r *Room) contractViolation(p *player.Player, err error) error {
	return fmt.Errorf("%w: %s (%s): %w", ErrContractViolation, p.Name, p.Mark, err)
}

// draw logs output errors. A broken terminal does not stop the game.
func (r *Room) draw(ctx context.Context, err error) {
	if err != nil {
		slog.WarnContext(ctx, "Failed to draw", "room.id", r.ID, "error", err)
	}
}

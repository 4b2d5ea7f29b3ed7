package room

import (
	"context"
	"log/slog"
	"time"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Reset throws the current board away and starts a new game with a new ID.
func (r *Room) Reset(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.Reset", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	// Width was accepted by NewRoom, so this cannot fail.
	board, _ := game.NewBoard(r.cfg.Width)

	r.mu.Lock()
	previous := r.gameID
	r.board = board
	r.gameID = uuid.NewString()
	r.moves = 0
	r.turn = r.firstSeat()
	current := r.gameID
	r.mu.Unlock()

	slog.InfoContext(ctx, "Game reset", "room.id", r.ID, "game.id", current)
	r.publish(ctx, events.TypeGameRestarted, events.GameRestartedPayload{
		RoomID:     r.ID,
		PreviousID: previous,
		GameID:     current,
	})
	r.announceGame(ctx)
}

// announceGame publishes the start of the current game.
func (r *Room) announceGame(ctx context.Context) {
	r.mu.Lock()
	gameID, first := r.gameID, r.roster[r.turn]
	r.mu.Unlock()

	players := make(map[string]string, len(r.roster))
	for _, p := range r.roster {
		players[string(p.Mark)] = p.Name
	}
	r.publish(ctx, events.TypeGameStarted, events.GameStartedPayload{
		RoomID:    r.ID,
		GameID:    gameID,
		Width:     r.cfg.Width,
		FirstMark: string(first.Mark),
		Players:   players,
	})
}

// finishGame reports a decided game to the players, the event feed and the
// scoreboard.
func (r *Room) finishGame(ctx context.Context, outcome game.Outcome) {
	r.mu.Lock()
	gameID, moves, board := r.gameID, r.moves, r.board.Clone()
	r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "room.finishGame", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("game.id", gameID),
		attribute.String("game.outcome", outcome.String()),
	))
	defer span.End()

	slog.InfoContext(ctx, "Game over", "room.id", r.ID, "game.id", gameID, "outcome", outcome.String(), "moves", moves)
	r.gameCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("game.status", outcome.Status.String())))

	r.draw(ctx, r.renderer.Board(board))
	r.draw(ctx, r.renderer.Outcome(outcome, r.roster))

	r.publish(ctx, events.TypeGameOver, events.GameOverPayload{
		RoomID: r.ID,
		GameID: gameID,
		Status: outcome.Status.String(),
		Winner: string(outcome.Winner),
		Moves:  moves,
	})

	if r.scores == nil {
		return
	}
	err := r.scores.RecordResult(ctx, repository.GameResult{
		RoomID:     r.ID,
		GameID:     gameID,
		Outcome:    outcome,
		Moves:      moves,
		FinishedAt: time.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to record result", "room.id", r.ID, "game.id", gameID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to record result")
		return
	}
	tally, err := r.scores.Tally(ctx, r.ID)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load scoreboard", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load scoreboard")
		return
	}
	r.draw(ctx, r.renderer.Scoreboard(tally, r.roster))
}

// publish sends an event. Spectators are optional, so failures are only logged.
func (r *Room) publish(ctx context.Context, eventType string, payload any) {
	event, err := events.New(eventType, payload)
	if err == nil {
		err = r.publisher.Publish(ctx, event)
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "room.id", r.ID, "event", eventType, "error", err)
	}
}

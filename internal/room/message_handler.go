package room

import (
	"context"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type turnResult int

const (
	turnRetry turnResult = iota
	turnPlayed
	turnRestarted
	turnExit
)

// handleRequest handles a request from the seat to move. It acts as a dispatcher.
func (r *Room) handleRequest(ctx context.Context, seat int, req player.Request) (turnResult, error) {
	p := r.roster[seat]
	ctx, span := tracer.Start(ctx, "room.handleRequest", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
		attribute.String("request.action", req.Action.String()),
	))
	defer span.End()

	if req.Action != player.ActionMove && !p.IsHuman() {
		err := r.contractViolation(p, fmt.Errorf("computer asked for %s", req.Action))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer sent a non-move request")
		return turnRetry, err
	}

	switch req.Action {
	case player.ActionHelp:
		r.draw(ctx, r.renderer.Help(r.Board()))
		return turnRetry, nil
	case player.ActionExit:
		return turnExit, nil
	case player.ActionRestart:
		slog.InfoContext(ctx, "Player restarted the game", "player.id", p.ID, "room.id", r.ID)
		r.Reset(ctx)
		return turnRestarted, nil
	default:
		return r.handleMove(ctx, seat, req.Cell)
	}
}

// handleMove places the seat's mark and passes the turn unless the move
// decided the game.
func (r *Room) handleMove(ctx context.Context, seat, cell int) (turnResult, error) {
	p := r.roster[seat]
	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
		attribute.Int("move.cell", cell),
	))
	defer moveSpan.End()

	r.mu.Lock()
	err := r.applyMoveLocked(cell, p.Mark)
	var outcome game.Outcome
	if err == nil {
		outcome = game.Evaluate(r.board)
		if !outcome.IsTerminal() {
			r.turn = 1 - seat
		}
	}
	gameID, cells := r.gameID, r.board.Cells()
	r.mu.Unlock()

	if err != nil {
		moveSpan.SetAttributes(attribute.Bool("move.valid", false))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		if !p.IsHuman() {
			return turnRetry, r.contractViolation(p, err)
		}
		slog.DebugContext(ctx, "Invalid move from player", "player.id", p.ID, "error", err)
		r.draw(ctx, r.renderer.Error(err))
		return turnRetry, nil
	}
	moveSpan.SetAttributes(
		attribute.Bool("move.valid", true),
		attribute.String("game.status", outcome.Status.String()),
	)

	r.moveCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("player.kind", string(p.Kind))))
	if !p.IsHuman() {
		r.draw(ctx, r.renderer.Move(p, cell))
	}

	board := make([]string, len(cells))
	for i, c := range cells {
		board[i] = string(c)
	}
	r.publish(ctx, events.TypeMoveApplied, events.MoveAppliedPayload{
		RoomID: r.ID,
		GameID: gameID,
		Mark:   string(p.Mark),
		Cell:   cell,
		Board:  board,
	})
	return turnPlayed, nil
}

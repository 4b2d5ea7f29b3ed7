package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ctchen222/tictactoe/internal/player"
)

// ErrNoMove is returned when the bot is asked to move on a board without empty cells.
var ErrNoMove = errors.New("bot has no legal move")

// BotMoveSource is the computer seat's move source. It always answers with a
// move and never asks for help, exit or restart.
type BotMoveSource struct {
	engine     *Engine
	difficulty string
	thinkTime  time.Duration
}

// NewBotMoveSource creates a move source playing at the given difficulty.
func NewBotMoveSource(engine *Engine, difficulty string, thinkTime time.Duration) *BotMoveSource {
	if engine == nil {
		engine = defaultEngine
	}
	return &BotMoveSource{
		engine:     engine,
		difficulty: difficulty,
		thinkTime:  thinkTime,
	}
}

// NextAction implements player.MoveSource.
func (s *BotMoveSource) NextAction(ctx context.Context, view player.View) (player.Request, error) {
	ctx, span := tracer.Start(ctx, "bot.NextAction")
	defer span.End()

	self, opponent := view.Self(), view.Opponent()
	slog.DebugContext(ctx, "Bot is thinking", "player.id", self.ID, "mark", self.Mark, "difficulty", s.difficulty)

	if s.thinkTime > 0 {
		select {
		case <-time.After(s.thinkTime):
		case <-ctx.Done():
			return player.Request{}, ctx.Err()
		}
	}

	cell := s.engine.CalculateNextMove(ctx, view.Board, self.Mark, opponent.Mark, s.difficulty)
	if cell == -1 {
		return player.Request{}, ErrNoMove
	}
	slog.DebugContext(ctx, "Bot chose a move", "player.id", self.ID, "cell", cell)
	return player.Move(cell), nil
}

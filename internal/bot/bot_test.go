package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
)

func botView(b *game.Board) player.View {
	human := player.NewPlayer("human", "Human", o, player.KindHuman)
	computer := player.NewPlayer("bot", "Bot", x, player.KindComputer)
	return player.View{Board: b, Roster: player.Roster{human, computer}, Seat: 1}
}

func TestBotMoveSourceNextAction(t *testing.T) {
	b := game.MustBoardFrom(
		o, o, e,
		x, e, e,
		e, e, e,
	)
	src := NewBotMoveSource(nil, DifficultyHard, 0)
	req, err := src.NextAction(context.Background(), botView(b))
	if err != nil {
		t.Fatalf("NextAction() error = %v", err)
	}
	if req.Action != player.ActionMove || req.Cell != 2 {
		t.Errorf("NextAction() = %+v, want a move to 2", req)
	}
}

func TestBotMoveSourceFullBoard(t *testing.T) {
	b := game.MustBoardFrom(x, o, x, o, x, o, o, x, o)
	src := NewBotMoveSource(NewEngine(), DifficultyMedium, 0)
	if _, err := src.NextAction(context.Background(), botView(b)); !errors.Is(err, ErrNoMove) {
		t.Errorf("NextAction() error = %v, want ErrNoMove", err)
	}
}

func TestBotMoveSourceThinkTimeHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := NewBotMoveSource(nil, DifficultyEasy, time.Hour)
	b := game.MustBoardFrom(e, e, e, e, e, e, e, e, e)
	if _, err := src.NextAction(ctx, botView(b)); !errors.Is(err, context.Canceled) {
		t.Errorf("NextAction() error = %v, want context.Canceled", err)
	}
}

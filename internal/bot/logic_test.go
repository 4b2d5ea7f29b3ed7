package bot

import (
	"context"
	"slices"
	"testing"

	"ctchen222/tictactoe/internal/game"
)

const (
	e = game.None
	x = game.PlayerX
	o = game.PlayerO
)

func TestFindWinningMove(t *testing.T) {
	tests := []struct {
		name      string
		board     *game.Board
		mark      game.PlayerMark
		wantCell  int
		wantFound bool
	}{
		{
			name:     "No winning move - empty board",
			board:    game.MustBoardFrom(e, e, e, e, e, e, e, e, e),
			mark:     x,
			wantCell: -1, wantFound: false,
		},
		{
			name: "X can win - first row",
			board: game.MustBoardFrom(
				x, x, e,
				o, o, e,
				e, e, e,
			),
			mark:     x,
			wantCell: 2, wantFound: true,
		},
		{
			name: "O can win - second column",
			board: game.MustBoardFrom(
				x, o, e,
				x, o, e,
				e, e, e,
			),
			mark:     o,
			wantCell: 7, wantFound: true,
		},
		{
			name: "X can win - main diagonal",
			board: game.MustBoardFrom(
				x, e, e,
				e, x, e,
				e, e, e,
			),
			mark:     x,
			wantCell: 8, wantFound: true,
		},
		{
			name: "O can win - anti-diagonal",
			board: game.MustBoardFrom(
				e, e, o,
				e, o, e,
				e, e, e,
			),
			mark:     o,
			wantCell: 6, wantFound: true,
		},
		{
			name: "Gap in the middle of a row",
			board: game.MustBoardFrom(
				e, e, e,
				o, e, o,
				e, e, e,
			),
			mark:     o,
			wantCell: 4, wantFound: true,
		},
		{
			name: "Blocked line is not a win",
			board: game.MustBoardFrom(
				x, x, o,
				e, e, e,
				e, e, e,
			),
			mark:     x,
			wantCell: -1, wantFound: false,
		},
		{
			name: "Full board, no win possible",
			board: game.MustBoardFrom(
				x, o, x,
				o, x, o,
				o, x, o,
			),
			mark:     x,
			wantCell: -1, wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, found := findWinningMove(tt.board, tt.mark)
			if found != tt.wantFound || cell != tt.wantCell {
				t.Errorf("findWinningMove() for %s got (%d, %v), want (%d, %v)", tt.name, cell, found, tt.wantCell, tt.wantFound)
			}
		})
	}
}

func TestEasyMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		b := game.MustBoardFrom(
			x, o, x,
			o, x, o,
			x, e, o,
		)
		if cell := easyMove(b); cell != 7 {
			t.Errorf("easyMove should pick the only available spot 7, but got %d", cell)
		}
	})

	t.Run("Multiple spots left", func(t *testing.T) {
		b := game.MustBoardFrom(x, e, e, e, o, e, e, e, e)
		available := b.EmptyCells()
		for range 50 {
			if cell := easyMove(b); !slices.Contains(available, cell) {
				t.Errorf("easyMove returned an invalid move %d", cell)
			}
		}
	})

	t.Run("Full board", func(t *testing.T) {
		b := game.MustBoardFrom(x, o, x, o, x, o, x, o, x)
		if cell := easyMove(b); cell != -1 {
			t.Errorf("easyMove on a full board should return -1, but got %d", cell)
		}
	})
}

func TestMediumMove(t *testing.T) {
	tests := []struct {
		name     string
		board    *game.Board
		wantCell int
		wantAny  []int
	}{
		{
			name: "Bot can win",
			board: game.MustBoardFrom(
				x, x, e,
				o, e, e,
				e, e, e,
			),
			wantCell: 2,
		},
		{
			name: "Bot must block opponent",
			board: game.MustBoardFrom(
				o, o, e,
				x, e, e,
				e, e, e,
			),
			wantCell: 2,
		},
		{
			name: "Winning beats blocking",
			board: game.MustBoardFrom(
				o, o, e,
				x, x, e,
				e, e, e,
			),
			wantCell: 5,
		},
		{
			name: "No immediate win or block, play next to own mark",
			board: game.MustBoardFrom(
				x, e, e,
				e, o, e,
				e, e, e,
			),
			wantAny: []int{1, 3},
		},
		{
			name: "Full board",
			board: game.MustBoardFrom(
				x, o, x,
				o, x, o,
				x, o, x,
			),
			wantCell: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := mediumMove(tt.board, x, o)
			if tt.wantAny != nil {
				if !slices.Contains(tt.wantAny, cell) {
					t.Errorf("mediumMove() got %d, want one of %v", cell, tt.wantAny)
				}
				return
			}
			if cell != tt.wantCell {
				t.Errorf("mediumMove() for %s got %d, want %d", tt.name, cell, tt.wantCell)
			}
		})
	}
}

func TestAdjacencyScore(t *testing.T) {
	b := game.MustBoardFrom(
		e, x, e,
		x, e, e,
		e, x, e,
	)
	if got := adjacencyScore(b, 4, x); got != 3 {
		t.Errorf("adjacencyScore(4) = %d, want 3", got)
	}
	// Cell 2 sits on the right edge; cell 3 starts the next row and must not count.
	if got := adjacencyScore(b, 2, x); got != 1 {
		t.Errorf("adjacencyScore(2) = %d, want 1", got)
	}
}

func TestCalculateNextMove(t *testing.T) {
	engine := NewEngine(WithPruning())
	tests := []struct {
		name       string
		board      *game.Board
		difficulty string
		wantCell   int // -1 means any empty cell
	}{
		{
			name: "Hard difficulty - winning move",
			board: game.MustBoardFrom(
				x, x, e,
				o, e, e,
				o, e, e,
			),
			difficulty: DifficultyHard,
			wantCell:   2,
		},
		{
			name: "Medium difficulty - blocking move",
			board: game.MustBoardFrom(
				o, o, e,
				x, e, e,
				e, e, e,
			),
			difficulty: DifficultyMedium,
			wantCell:   2,
		},
		{
			name:       "Easy difficulty - random valid move",
			board:      game.MustBoardFrom(e, e, e, e, e, e, e, e, e),
			difficulty: DifficultyEasy,
			wantCell:   -1,
		},
		{
			name: "Invalid difficulty - defaults to hard",
			board: game.MustBoardFrom(
				x, x, e,
				o, e, e,
				o, e, e,
			),
			difficulty: "invalid",
			wantCell:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := engine.CalculateNextMove(context.Background(), tt.board, x, o, tt.difficulty)
			if tt.wantCell == -1 {
				if !slices.Contains(tt.board.EmptyCells(), cell) {
					t.Errorf("CalculateNextMove for %s returned a non-empty spot %d", tt.name, cell)
				}
				return
			}
			if cell != tt.wantCell {
				t.Errorf("CalculateNextMove() for %s got %d, want %d", tt.name, cell, tt.wantCell)
			}
		})
	}
}

func TestCalculateNextMoveFullBoard(t *testing.T) {
	b := game.MustBoardFrom(x, o, x, o, x, o, x, o, x)
	for _, d := range []string{DifficultyEasy, DifficultyMedium} {
		if cell := NewEngine().CalculateNextMove(context.Background(), b, x, o, d); cell != -1 {
			t.Errorf("%s on a full board should return -1, got %d", d, cell)
		}
	}
}

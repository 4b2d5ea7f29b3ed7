package bot

import (
	"context"
	"math/rand/v2"

	"ctchen222/tictactoe/internal/game"
)

// Difficulty levels understood by CalculateNextMove.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// CalculateNextMove determines the bot's next move based on the specified
// difficulty. It returns -1 when the board has no empty cell. Unknown
// difficulties play as hard.
func (e *Engine) CalculateNextMove(ctx context.Context, b *game.Board, botMark, opponentMark game.PlayerMark, difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return easyMove(b)
	case DifficultyMedium:
		return mediumMove(b, botMark, opponentMark)
	default:
		return e.hardMove(ctx, b, botMark, opponentMark)
	}
}

// easyMove makes a completely random move.
func easyMove(b *game.Board) int {
	available := b.EmptyCells()
	if len(available) == 0 {
		return -1
	}
	return available[rand.IntN(len(available))]
}

// mediumMove will win if it can, block if it must, otherwise play next to its
// own marks.
func mediumMove(b *game.Board, botMark, opponentMark game.PlayerMark) int {
	if cell, ok := findWinningMove(b, botMark); ok {
		return cell
	}
	if cell, ok := findWinningMove(b, opponentMark); ok {
		return cell
	}
	return adjacencyMove(b, botMark)
}

// hardMove plays the full minimax search.
func (e *Engine) hardMove(ctx context.Context, b *game.Board, botMark, opponentMark game.PlayerMark) int {
	if len(b.EmptyCells()) == 0 {
		return -1
	}
	return e.Search(ctx, b, botMark, opponentMark).Cell
}

// findWinningMove looks for an axis where mark holds every cell but one and the
// remaining cell is empty.
func findWinningMove(b *game.Board, mark game.PlayerMark) (cell int, found bool) {
	for _, axis := range b.AxisIndices() {
		held, gap := 0, -1
		for _, idx := range axis {
			switch c, _ := b.Cell(idx); c {
			case mark:
				held++
			case game.None:
				gap = idx
			}
		}
		if gap != -1 && held == len(axis)-1 {
			return gap, true
		}
	}
	return -1, false
}

// adjacencyScore counts the orthogonal neighbours of cell held by mark.
func adjacencyScore(b *game.Board, cell int, mark game.PlayerMark) int {
	n := 0
	for _, c := range b.AdjacentCells(cell) {
		if c == mark {
			n++
		}
	}
	return n
}

// adjacencyMove picks, at random, one of the empty cells touching the most
// cells already held by mark.
func adjacencyMove(b *game.Board, mark game.PlayerMark) int {
	var best []int
	bestScore := -1
	for _, cell := range b.EmptyCells() {
		score := adjacencyScore(b, cell, mark)
		switch {
		case score > bestScore:
			best, bestScore = []int{cell}, score
		case score == bestScore:
			best = append(best, cell)
		}
	}
	if len(best) == 0 {
		return -1
	}
	return best[rand.IntN(len(best))]
}

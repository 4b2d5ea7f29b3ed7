package room

import (
	"math/rand/v2"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
)

// Board returns a copy of the current board.
func (r *Room) Board() *game.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board.Clone()
}

// Outcome evaluates the current board.
func (r *Room) Outcome() game.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return game.Evaluate(r.board)
}

// GameID returns the ID of the game being played.
func (r *Room) GameID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gameID
}

// CurrentPlayer returns the player whose turn it is.
func (r *Room) CurrentPlayer() *player.Player {
	return r.roster[r.currentSeat()]
}

func (r *Room) currentSeat() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turn
}

func (r *Room) view(seat int, gameOver bool) player.View {
	return player.View{
		Board:    r.Board(),
		Roster:   r.roster,
		Seat:     seat,
		GameOver: gameOver,
	}
}

// firstSeat picks the seat that opens a game.
func (r *Room) firstSeat() int {
	switch r.cfg.FirstPlayer {
	case FirstPlayerSecond:
		return 1
	case FirstPlayerRandom:
		return rand.IntN(2)
	default:
		return 0
	}
}

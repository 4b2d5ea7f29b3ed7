package player

import (
	"errors"

	"ctchen222/tictactoe/internal/game"
)

var (
	ErrIncompleteRoster = errors.New("roster needs two players with move sources")
	ErrDuplicateMark    = errors.New("players must use distinct marks")
)

// Roster holds the two seats of a game, in seating order.
type Roster [2]*Player

// Validate checks that both seats are filled with distinct, non-empty marks.
func (r Roster) Validate() error {
	for _, p := range r {
		if p == nil || p.Source == nil || p.Mark == game.None {
			return ErrIncompleteRoster
		}
	}
	if r[0].Mark == r[1].Mark {
		return ErrDuplicateMark
	}
	return nil
}

// Opponent returns the player in the other seat.
func (r Roster) Opponent(seat int) *Player {
	return r[1-seat]
}

// ByMark returns the player using mark.
func (r Roster) ByMark(mark game.PlayerMark) (*Player, bool) {
	for _, p := range r {
		if p != nil && p.Mark == mark {
			return p, true
		}
	}
	return nil, false
}

// Label returns the display name for mark, or the mark itself when no player
// uses it.
func (r Roster) Label(mark game.PlayerMark) string {
	if p, ok := r.ByMark(mark); ok {
		return p.Name
	}
	return string(mark)
}

// HumanSeat returns the first seat held by a human.
func (r Roster) HumanSeat() (int, bool) {
	for i, p := range r {
		if p != nil && p.IsHuman() {
			return i, true
		}
	}
	return -1, false
}

package game

import "fmt"

// Status is the coarse state of a game.
type Status int

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is derived from a board on demand and never stored alongside it.
type Outcome struct {
	Status Status
	Winner PlayerMark
}

// IsTerminal reports whether no further moves should be played.
func (o Outcome) IsTerminal() bool {
	return o.Status != InProgress
}

func (o Outcome) String() string {
	if o.Status == Win {
		return fmt.Sprintf("win(%s)", o.Winner)
	}
	return o.Status.String()
}

// Evaluate checks rows, then columns, then the major and minor diagonals. The
// first axis fully held by one mark decides the game. A full board without a
// winning axis is a draw.
func Evaluate(b *Board) Outcome {
	if winner := CheckWinner(b); winner != None {
		return Outcome{Status: Win, Winner: winner}
	}
	if b.IsFull() {
		return Outcome{Status: Draw}
	}
	return Outcome{Status: InProgress}
}

// CheckWinner returns the mark holding a complete axis, or None. It walks the
// axes in the same order as Board.Axes without allocating, since the search
// engine calls it for every node.
func CheckWinner(b *Board) PlayerMark {
	w := b.width
	for r := range w {
		if mark := b.lineWinner(r*w, 1); mark != None {
			return mark
		}
	}
	for c := range w {
		if mark := b.lineWinner(c, w); mark != None {
			return mark
		}
	}
	if mark := b.lineWinner(0, w+1); mark != None {
		return mark
	}
	return b.lineWinner(w-1, w-1)
}

// lineWinner checks the width cells starting at start and advancing by step.
func (b *Board) lineWinner(start, step int) PlayerMark {
	first := b.cells[start]
	if first == None {
		return None
	}
	for i := 1; i < b.width; i++ {
		if b.cells[start+i*step] != first {
			return None
		}
	}
	return first
}

package game

import (
	"errors"
	"fmt"
)

// PlayerMark identifies which side occupies a cell. None is the empty cell.
type PlayerMark string

const (
	None PlayerMark = ""

	// Default marks used when the roster does not override them.
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// StandardWidth is the width of a classic tic-tac-toe board.
	StandardWidth = 3
)

var (
	ErrInvalidWidth = errors.New("board width must be positive")
	ErrUnevenBoard  = errors.New("board cells do not form a square")
	ErrInvalidMark  = errors.New("cannot place an empty mark")
	ErrOutOfBounds  = errors.New("move out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrGameOver     = errors.New("the game is already over")
)

// MoveError reports why a move could not be applied to a board.
type MoveError struct {
	Index int
	Err   error
}

func (e *MoveError) Error() string {
	switch e.Err {
	case ErrOutOfBounds:
		return fmt.Sprintf("move %d would be out of bounds", e.Index)
	case ErrCellOccupied:
		return fmt.Sprintf("%d is not a legal move", e.Index)
	}
	return fmt.Sprintf("move %d: %v", e.Index, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Board is a width x width grid stored row-major. Copies made with Clone are
// fully independent of the original.
type Board struct {
	cells []PlayerMark
	width int
}

// NewBoard returns an empty board of the given width.
func NewBoard(width int) (*Board, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	return &Board{
		cells: make([]PlayerMark, width*width),
		width: width,
	}, nil
}

// BoardFrom builds a board from row-major cells. The number of cells must be a
// non-zero perfect square.
func BoardFrom(cells []PlayerMark) (*Board, error) {
	width := 0
	for width*width < len(cells) {
		width++
	}
	if width == 0 || width*width != len(cells) {
		return nil, fmt.Errorf("%w: %d cells", ErrUnevenBoard, len(cells))
	}
	b := &Board{cells: make([]PlayerMark, len(cells)), width: width}
	copy(b.cells, cells)
	return b, nil
}

// MustBoardFrom is like BoardFrom but panics if the cells are malformed.
func MustBoardFrom(cells ...PlayerMark) *Board {
	b, err := BoardFrom(cells)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Width() int { return b.width }

func (b *Board) Len() int { return len(b.cells) }

// Cell returns the mark at index. ok is false when index is off the board.
func (b *Board) Cell(index int) (mark PlayerMark, ok bool) {
	if index < 0 || index >= len(b.cells) {
		return None, false
	}
	return b.cells[index], true
}

// Cells returns a row-major copy of the board.
func (b *Board) Cells() []PlayerMark {
	out := make([]PlayerMark, len(b.cells))
	copy(out, b.cells)
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{cells: b.Cells(), width: b.width}
}

// ValidateMove checks whether index is on the board and empty.
func (b *Board) ValidateMove(index int) error {
	if index < 0 || index >= len(b.cells) {
		return &MoveError{Index: index, Err: ErrOutOfBounds}
	}
	if b.cells[index] != None {
		return &MoveError{Index: index, Err: ErrCellOccupied}
	}
	return nil
}

// Place occupies index with mark. The board is left untouched on error.
func (b *Board) Place(index int, mark PlayerMark) error {
	if mark == None {
		return ErrInvalidMark
	}
	if err := b.ValidateMove(index); err != nil {
		return err
	}
	b.cells[index] = mark
	return nil
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c == None {
			return false
		}
	}
	return true
}

// EmptyCells returns the indices of empty cells in ascending order.
func (b *Board) EmptyCells() []int {
	var out []int
	for i, c := range b.cells {
		if c == None {
			out = append(out, i)
		}
	}
	return out
}

// Count returns how many cells hold mark.
func (b *Board) Count(mark PlayerMark) int {
	n := 0
	for _, c := range b.cells {
		if c == mark {
			n++
		}
	}
	return n
}

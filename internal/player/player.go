package player

import (
	"context"

	"ctchen222/tictactoe/internal/game"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks ctchen222/tictactoe/internal/player MoveSource

// Kind says who is behind a seat.
type Kind string

const (
	KindHuman    Kind = "human"
	KindComputer Kind = "computer"
)

// Action is what a move source asks the room to do next.
type Action int

const (
	ActionMove Action = iota
	ActionHelp
	ActionExit
	ActionRestart
)

func (a Action) String() string {
	switch a {
	case ActionHelp:
		return "help"
	case ActionExit:
		return "exit"
	case ActionRestart:
		return "restart"
	default:
		return "move"
	}
}

// Request is the answer of a move source. Cell is only meaningful for ActionMove.
type Request struct {
	Action Action
	Cell   int
}

// Move is a convenience constructor for a move request.
func Move(cell int) Request {
	return Request{Action: ActionMove, Cell: cell}
}

// View is the read-only state handed to a move source. Board is a private copy.
type View struct {
	Board    *game.Board
	Roster   Roster
	Seat     int
	GameOver bool
}

// Self returns the player whose turn it is.
func (v View) Self() *Player {
	return v.Roster[v.Seat]
}

// Opponent returns the other player.
func (v View) Opponent() *Player {
	return v.Roster.Opponent(v.Seat)
}

// MoveSource produces the next request for a seat. Only human sources may
// return help, exit or restart.
type MoveSource interface {
	NextAction(ctx context.Context, view View) (Request, error)
}

// Player represents a seat at the table.
type Player struct {
	ID         string
	Name       string
	Mark       game.PlayerMark
	Kind       Kind
	Difficulty string
	Source     MoveSource
}

// NewPlayer creates a new player.
func NewPlayer(id, name string, mark game.PlayerMark, kind Kind) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Mark: mark,
		Kind: kind,
	}
}

func (p *Player) IsHuman() bool {
	return p.Kind == KindHuman
}

// Package console reads a human player's commands from a line oriented stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrGameOver       = fmt.Errorf("%w, type 'restart' or 'exit'", game.ErrGameOver)
)

// ParseCommand turns one line of input into a request. Commands are case
// insensitive; anything else must be a non-negative cell index. The index is
// not checked against a board here.
func ParseCommand(line string) (player.Request, error) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "help":
		return player.Request{Action: player.ActionHelp}, nil
	case "exit", "quit":
		return player.Request{Action: player.ActionExit}, nil
	case "restart":
		return player.Request{Action: player.ActionRestart}, nil
	}

	cell, err := strconv.Atoi(cmd)
	if err != nil || cell < 0 {
		return player.Request{}, fmt.Errorf("%w: %q", ErrInvalidCommand, strings.TrimSpace(line))
	}
	return player.Move(cell), nil
}

// LineSource is the move source of a human at a terminal. It writes a prompt,
// reads one line and answers with the parsed request.
type LineSource struct {
	in   io.Reader
	out  io.Writer
	once sync.Once
	// lines is fed by a single reader goroutine so a blocked read never keeps
	// NextAction from noticing a cancelled context.
	lines chan line
}

type line struct {
	text string
	err  error
}

// NewLineSource creates a LineSource reading from in and prompting on out.
func NewLineSource(in io.Reader, out io.Writer) *LineSource {
	return &LineSource{
		in:    in,
		out:   out,
		lines: make(chan line),
	}
}

func (s *LineSource) readLines() {
	defer close(s.lines)
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		s.lines <- line{text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		s.lines <- line{err: err}
	}
}

// NextAction implements player.MoveSource. Moves are validated against the
// board of the view so an illegal cell is reported before it reaches the room.
// End of input is treated as a request to exit.
func (s *LineSource) NextAction(ctx context.Context, view player.View) (player.Request, error) {
	if err := ctx.Err(); err != nil {
		return player.Request{}, err
	}
	s.once.Do(func() { go s.readLines() })

	self := view.Self()
	if view.GameOver {
		fmt.Fprint(s.out, "Type 'restart' to play again or 'exit' to quit: ")
	} else {
		fmt.Fprintf(s.out, "%s (%s), choose a cell from 0 to %d or type 'help': ", self.Name, self.Mark, view.Board.Len()-1)
	}

	var in line
	select {
	case <-ctx.Done():
		return player.Request{}, ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			slog.DebugContext(ctx, "Input closed, exiting", "player.id", self.ID)
			fmt.Fprintln(s.out)
			return player.Request{Action: player.ActionExit}, nil
		}
		in = l
	}
	if in.err != nil {
		return player.Request{}, fmt.Errorf("failed to read input: %w", in.err)
	}

	req, err := ParseCommand(in.text)
	if err != nil {
		return player.Request{}, err
	}
	if req.Action != player.ActionMove {
		return req, nil
	}
	if view.GameOver {
		return player.Request{}, ErrGameOver
	}
	if err := view.Board.ValidateMove(req.Cell); err != nil {
		return player.Request{}, err
	}
	return req, nil
}

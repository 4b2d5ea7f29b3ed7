// Package render draws boards and game results as plain text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/repository"
)

// Renderer writes human readable game output to a terminal.
type Renderer struct {
	out io.Writer
}

// New creates a Renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Board draws the current marks row by row. Empty cells are blank.
func (r *Renderer) Board(b *game.Board) error {
	var sb strings.Builder
	sb.WriteString("\nThe board currently looks like this:\n")
	writeGrid(&sb, b.Width(), func(i int) string {
		mark, _ := b.Cell(i)
		if mark == game.None {
			return " "
		}
		return string(mark)
	})
	return r.write(sb.String())
}

// Help draws the index of every cell, which is what a player types to move.
func (r *Renderer) Help(b *game.Board) error {
	var sb strings.Builder
	sb.WriteString("\nThis is how you designate the board cells:\n")
	writeGrid(&sb, b.Width(), strconv.Itoa)
	fmt.Fprintf(&sb, "Type a number from 0 to %d to make your choice.\n", b.Len()-1)
	sb.WriteString("Type 'restart' to start over or 'exit' to quit.\n")
	return r.write(sb.String())
}

// Move tells the table which cell a player took.
func (r *Renderer) Move(p *player.Player, cell int) error {
	return r.write(fmt.Sprintf("%s (%s) plays %d.\n", p.Name, p.Mark, cell))
}

// Outcome announces the end of a game. It writes nothing while the game is
// still in progress.
func (r *Renderer) Outcome(o game.Outcome, roster player.Roster) error {
	switch o.Status {
	case game.Win:
		return r.write(fmt.Sprintf("%s is the victor!\n", roster.Label(o.Winner)))
	case game.Draw:
		return r.write("A draw.\n")
	}
	return nil
}

// Scoreboard prints the running tally of the session.
func (r *Renderer) Scoreboard(t *repository.Tally, roster player.Roster) error {
	parts := make([]string, 0, len(roster)+1)
	for _, p := range roster {
		parts = append(parts, fmt.Sprintf("%s (%s) %d", p.Name, p.Mark, t.Wins[p.Mark]))
	}
	parts = append(parts, fmt.Sprintf("draws %d", t.Draws))
	return r.write(fmt.Sprintf("Score after %d %s: %s\n", t.Games, plural(t.Games, "game"), strings.Join(parts, ", ")))
}

// Error reports a recoverable problem, such as an illegal move, to the player.
func (r *Renderer) Error(err error) error {
	return r.write(err.Error() + "\n")
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeGrid lays out width x width cells separated by " | ", with an
// underscore rule below each row. Cells are padded to the widest text.
func writeGrid(sb *strings.Builder, width int, text func(i int) string) {
	cellWidth := 1
	for i := range width * width {
		cellWidth = max(cellWidth, len(text(i)))
	}

	rule := make([]string, width)
	for c := range width {
		n := cellWidth + 2
		if c == 0 {
			n = cellWidth + 1
		}
		rule[c] = strings.Repeat("_", n)
	}

	for row := range width {
		cells := make([]string, width)
		for col := range width {
			cells[col] = fmt.Sprintf("%-*s", cellWidth, text(game.IndexOf(row, col, width)))
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
		sb.WriteString(strings.Join(rule, "|"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

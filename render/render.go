// Package render draws match snapshots on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"tabletop/engine"
	"tabletop/game"

	"github.com/muesli/termenv"
)

type Renderer struct {
	out *termenv.Output
}

// New renders to w. The colour profile is detected from w unless an option
// sets one.
func New(w io.Writer, options ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, options...)}
}

func (r *Renderer) square(p game.Player) string {
	switch p {
	case game.Zero:
		return r.out.String("O").Foreground(r.out.Color("2")).Bold().String()
	case game.One:
		return r.out.String("X").Foreground(r.out.Color("1")).Bold().String()
	default:
		return r.out.String(".").Faint().String()
	}
}

// Board returns the board with column and row numbers, ZERO as O and ONE as X.
func (r *Renderer) Board(board game.Board) string {
	var b strings.Builder
	b.WriteString("  ")
	for x := 0; x < board.Width(); x++ {
		fmt.Fprintf(&b, " %d", x%10)
	}
	b.WriteString("\n")
	for y, row := range board {
		fmt.Fprintf(&b, "%2d", y)
		for _, square := range row {
			b.WriteString(" ")
			b.WriteString(r.square(square))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Snapshot writes a header line, the last move and the board.
func (r *Renderer) Snapshot(snapshot engine.Snapshot) error {
	var b strings.Builder
	if snapshot.Status == game.Ongoing {
		fmt.Fprintf(&b, "%s turn %d, %s to move\n", snapshot.Game, snapshot.Turn, snapshot.Player)
	} else {
		fmt.Fprintf(&b, "%s turn %d, %s\n", snapshot.Game, snapshot.Turn, r.out.String(snapshot.Status.String()).Bold())
	}
	if snapshot.LastMove != "" {
		fmt.Fprintf(&b, "last move: %s\n", snapshot.LastMove)
	}
	if snapshot.Board != nil {
		b.WriteString(r.Board(snapshot.Board))
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

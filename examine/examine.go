package examine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/submersibletoaster/acctocr/glyph"
)

const (
	// Lines - input lines per block, the last one blank
	Lines = 4
	// Positions - digits per account number
	Positions = 9
	// Columns - padded width of a content line
	Columns = Positions * glyph.Width
)

// ErrMalformedBlock - input lines do not form a block
var ErrMalformedBlock = errors.New("malformed block")

// MalformedBlockError describes why lines were rejected as a block.
type MalformedBlockError struct {
	Reason string
}

func (e *MalformedBlockError) Error() string {
	return ErrMalformedBlock.Error() + ": " + e.Reason
}

func (e *MalformedBlockError) Unwrap() error {
	return ErrMalformedBlock
}

// Block - three content lines padded to Columns, validated against the
// fourth blank line. Immutable once built.
type Block struct {
	lines [glyph.Height]string
}

// NewBlock validates and pads exactly four input lines.
func NewBlock(lines []string) (*Block, error) {
	if len(lines) != Lines {
		return nil, &MalformedBlockError{Reason: fmt.Sprintf("got %d lines, expected %d", len(lines), Lines)}
	}
	if strings.TrimSpace(lines[Lines-1]) != "" {
		return nil, &MalformedBlockError{Reason: fmt.Sprintf("line %d %q is not blank", Lines, lines[Lines-1])}
	}
	b := &Block{}
	for i := range b.lines {
		b.lines[i] = padRight(lines[i], Columns)
	}
	return b, nil
}

// padRight appends spaces up to width and never truncates.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Lines returns a copy of the padded content lines.
func (b *Block) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines[:])
	return out
}

// Cell returns the glyph cell of digit position pos, 0 being leftmost.
func (b *Block) Cell(pos int) glyph.Cell {
	return glyph.CellAt(b.lines[:], Origin(pos))
}

// Origin is the first column of digit position pos.
func Origin(pos int) int {
	return pos * glyph.Width
}

// Cel - one digit position of a block
type Cel struct {
	Cell    glyph.Cell
	Origin  int
	CharPos int
}

// Cels slices the block into its Positions cells, left to right.
func (b *Block) Cels() []Cel {
	out := make([]Cel, Positions)
	for pos := range out {
		out[pos] = Cel{Cell: b.Cell(pos), Origin: Origin(pos), CharPos: pos}
	}
	return out
}

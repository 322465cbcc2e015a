package glyph

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/steakknife/hamming"
)

const (
	// Width - columns occupied by one digit
	Width = 3
	// Height - content rows of one digit
	Height = 3
	// Digits - number of templates in a font
	Digits = 10
)

// ReferenceLines - the digits 0 through 9 side by side in the scanner's font
var ReferenceLines = [Height]string{
	" _     _  _     _  _  _  _  _ ",
	"| |  | _| _||_||_ |_   ||_||_|",
	"|_|  ||_  _|  | _||_|  ||_| _|",
}

// segments is the only non-space character each position of a cell may hold
// in a legible glyph. Corners never hold one.
var segments = [Height][Width]byte{
	{' ', '_', ' '},
	{'|', '_', '|'},
	{'|', '_', '|'},
}

// Cell - the 3x3 characters read for one digit position
type Cell [Height][Width]byte

// CellAt slices the cell starting at column start from the first Height
// lines. Characters past the end of a line read as spaces.
func CellAt(lines []string, start int) (c Cell) {
	for row := 0; row < Height; row++ {
		var line string
		if row < len(lines) {
			line = lines[row]
		}
		for col := 0; col < Width; col++ {
			i := start + col
			if i >= 0 && i < len(line) {
				c[row][col] = line[i]
			} else {
				c[row][col] = ' '
			}
		}
	}
	return c
}

func (c Cell) String() string {
	return string(c[0][:]) + "\n" + string(c[1][:]) + "\n" + string(c[2][:])
}

// encode packs the cell into a mask of lit segments and a mask of foreign
// characters: anything that is neither a space nor the segment character
// for its position. A foreign character mismatches every template.
func (c Cell) encode() (lit, foreign uint16) {
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			bit := uint16(1) << uint(row*Width+col)
			ch := c[row][col]
			switch {
			case ch == ' ':
			case segments[row][col] != ' ' && ch == segments[row][col]:
				lit |= bit
			default:
				foreign |= bit
			}
		}
	}
	return lit, foreign
}

// Info - a digit template and its encoded segments
type Info struct {
	Digit int
	Cell  Cell
	lit   uint16
}

// Font - the ten digit templates. Immutable once built, so one Font may be
// shared by any number of goroutines.
type Font struct {
	digits [Digits]Info
}

// NewFont builds a font from three reference lines holding the digits 0..9
// left to right, Width columns each.
func NewFont(lines [Height]string) (*Font, error) {
	f := &Font{}
	for row, line := range lines {
		if len(line) < Digits*Width {
			return nil, fmt.Errorf("reference line %d: got %d columns, need %d", row, len(line), Digits*Width)
		}
	}
	for d := 0; d < Digits; d++ {
		c := CellAt(lines[:], d*Width)
		lit, foreign := c.encode()
		if foreign != 0 {
			return nil, fmt.Errorf("template %d has characters outside the segment set:\n%s", d, c)
		}
		f.digits[d] = Info{Digit: d, Cell: c, lit: lit}
	}
	log.Debugf("built font with %d templates", Digits)
	return f, nil
}

// MustFont is NewFont that panics on error, for package level fonts.
func MustFont(lines [Height]string) *Font {
	f, err := NewFont(lines)
	if err != nil {
		panic(err)
	}
	return f
}

// Template returns the reference cell of digit d.
func (f *Font) Template(d int) Cell {
	return f.digits[d].Cell
}

// Distance counts the positions at which c differs from the template of
// digit d, in [0,9].
func (f *Font) Distance(c Cell, d int) int {
	lit, foreign := c.encode()
	return distance(lit, foreign, f.digits[d].lit)
}

func distance(lit, foreign, template uint16) int {
	// foreign positions are forced equal in both masks and counted once
	return hamming.Uint16(lit|foreign, template|foreign) + hamming.CountBitsUint16(foreign)
}

// Differences counts mismatches between the cell at column start and digit d.
func (f *Font) Differences(lines []string, start, d int) int {
	return f.Distance(CellAt(lines, start), d)
}

// ExactMatch returns the digit whose template equals the cell at column
// start.
func (f *Font) ExactMatch(lines []string, start int) (int, bool) {
	return f.ExactCell(CellAt(lines, start))
}

// ExactCell returns the digit whose template equals c. All ten templates
// are scanned; a match is reported only when exactly one has zero
// differences.
func (f *Font) ExactCell(c Cell) (int, bool) {
	lit, foreign := c.encode()
	match, found := -1, 0
	for d := 0; d < Digits; d++ {
		if distance(lit, foreign, f.digits[d].lit) == 0 {
			match = d
			found++
		}
	}
	if found != 1 {
		return -1, false
	}
	return match, true
}

// OneOff returns, ascending, every digit exactly one difference away from
// the cell at column start.
func (f *Font) OneOff(lines []string, start int) []int {
	return f.OneOffCell(CellAt(lines, start))
}

// OneOffCell returns, ascending, every digit exactly one difference away
// from c.
func (f *Font) OneOffCell(c Cell) []int {
	lit, foreign := c.encode()
	var out []int
	for d := 0; d < Digits; d++ {
		if distance(lit, foreign, f.digits[d].lit) == 1 {
			out = append(out, d)
		}
	}
	return out
}

// Neighbours returns the digits whose templates differ from digit d's in
// exactly one position.
func (f *Font) Neighbours(d int) []int {
	var out []int
	for o := 0; o < Digits; o++ {
		if distance(f.digits[d].lit, 0, f.digits[o].lit) == 1 {
			out = append(out, o)
		}
	}
	return out
}

// Match - scored match of a digit template against a cell
type Match struct {
	Score int // Score - differing positions, zero being identical
	Digit int
}

// Results - Sortable slice of Match
type Results []Match

func (r Results) Swap(i, j int) {
	r[j], r[i] = r[i], r[j]
}
func (r Results) Less(i, j int) bool {
	if r[i].Score != r[j].Score {
		return r[i].Score < r[j].Score
	}
	return r[i].Digit < r[j].Digit
}
func (r Results) Len() int {
	return len(r)
}

// Query - Return all ten digits scored against c, closest first
func (f *Font) Query(c Cell) Results {
	lit, foreign := c.encode()
	out := make(Results, 0, Digits)
	for d := 0; d < Digits; d++ {
		out = append(out, Match{Score: distance(lit, foreign, f.digits[d].lit), Digit: d})
	}
	sort.Sort(out)
	return out
}

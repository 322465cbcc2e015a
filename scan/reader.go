package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/submersibletoaster/acctocr/examine"
)

// ErrIncompleteBlock - input ended part way through a block
var ErrIncompleteBlock = errors.New("incomplete trailing block")

// Block - four consecutive input lines
type Block struct {
	Index int // Index - zero based position of the block in the input
	Line  int // Line - one based line number of the block's first line
	Lines []string
}

// Reader groups input lines into blocks.
type Reader struct {
	sc    *bufio.Scanner
	line  int
	index int
}

// NewReader reads blocks from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// Next returns the next block, io.EOF after the last full block, or an
// error wrapping ErrIncompleteBlock when fewer than four lines remain.
func (r *Reader) Next() (Block, error) {
	b := Block{Index: r.index, Line: r.line + 1, Lines: make([]string, 0, examine.Lines)}
	for len(b.Lines) < examine.Lines {
		if !r.sc.Scan() {
			if err := r.sc.Err(); err != nil {
				return Block{}, fmt.Errorf("reading line %d: %w", r.line+1, err)
			}
			if len(b.Lines) == 0 {
				return Block{}, io.EOF
			}
			return Block{}, fmt.Errorf("%d line(s) from line %d: %w", len(b.Lines), b.Line, ErrIncompleteBlock)
		}
		r.line++
		b.Lines = append(b.Lines, strings.TrimSuffix(r.sc.Text(), "\r"))
	}
	r.index++
	return b, nil
}

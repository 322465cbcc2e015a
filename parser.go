package acctocr

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/acctocr/examine"
	"github.com/submersibletoaster/acctocr/glyph"
)

// Mode selects how far a Parser goes past the raw read.
type Mode int

const (
	// ModeCorrect classifies and attempts single-substitution repairs.
	ModeCorrect Mode = iota
	// ModeValidate classifies without attempting repairs.
	ModeValidate
	// ModeRaw reports the raw read only.
	ModeRaw
)

var modeNames = map[Mode]string{
	ModeCorrect:  "correct",
	ModeValidate: "validate",
	ModeRaw:      "raw",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want correct, validate or raw)", s)
}

// Parser reads blocks with a fixed font and mode. It holds no mutable state
// and may be shared between goroutines.
type Parser struct {
	font *glyph.Font
	mode Mode
}

// Option configures a Parser.
type Option func(*Parser)

// WithFont replaces the reference font.
func WithFont(f *glyph.Font) Option {
	return func(p *Parser) {
		if f != nil {
			p.font = f
		}
	}
}

// WithMode sets the parse mode.
func WithMode(m Mode) Option {
	return func(p *Parser) {
		p.mode = m
	}
}

// NewParser returns a parser using the reference font in ModeCorrect unless
// options say otherwise.
func NewParser(opts ...Option) *Parser {
	p := &Parser{font: myFont, mode: ModeCorrect}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the parser's mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

// Font returns the parser's font.
func (p *Parser) Font() *glyph.Font {
	return p.font
}

// Parse validates four raw lines as a block and classifies it. The only
// error is an *examine.MalformedBlockError; unreadable or invalid numbers are
// reported through the Result.
func (p *Parser) Parse(lines []string) (Result, error) {
	b, err := examine.NewBlock(lines)
	if err != nil {
		return Result{}, err
	}
	return p.ParseBlock(b), nil
}

// ParseBlock classifies an already validated block.
func (p *Parser) ParseBlock(b *examine.Block) Result {
	cels := b.Cels()
	raw := p.extractRaw(cels)
	var r Result
	switch p.mode {
	case ModeRaw:
		r = Result{Status: StatusUnchecked, Raw: raw}
	case ModeValidate:
		r = verify(raw)
	default:
		r = p.classify(cels, raw)
	}
	log.Debugf("block %q: %s", raw, r.Status)
	return r
}

// ExtractRaw reads each digit position by exact template match, writing
// Illegible where none matches.
func (p *Parser) ExtractRaw(b *examine.Block) string {
	return p.extractRaw(b.Cels())
}

func (p *Parser) extractRaw(cels []examine.Cel) string {
	var sb strings.Builder
	sb.Grow(len(cels))
	for _, cel := range cels {
		if d, ok := p.font.ExactCell(cel.Cell); ok {
			sb.WriteByte(byte('0' + d))
		} else {
			sb.WriteByte(Illegible)
		}
	}
	return sb.String()
}

// ParseBlock parses four lines with the default parser.
func ParseBlock(lines []string) (Result, error) {
	return defaultParser.Parse(lines)
}

// ExtractRaw reads a block with the reference font.
func ExtractRaw(b *examine.Block) string {
	return defaultParser.ExtractRaw(b)
}

// Classify classifies a raw read of b with the reference font.
func Classify(b *examine.Block, raw string) Result {
	return defaultParser.Classify(b, raw)
}

package acctocr

import (
	"fmt"
	"strings"

	"github.com/submersibletoaster/acctocr/examine"
)

// Classify decides the outcome of a raw read of b.
//
//	all legible, checksum good              clean
//	more than one illegible                 illegible, no search
//	otherwise exactly one repair            corrected
//	otherwise several repairs               ambiguous
//	otherwise none, all legible             error
//	otherwise none, one illegible           illegible
//
// A repair replaces the digit at one position with a digit whose template
// is exactly one character away from that cell. With one illegible position
// only that position is tried; with none, every position is.
//
// raw must be Positions long; anything else is a caller bug and panics.
func (p *Parser) Classify(b *examine.Block, raw string) Result {
	return p.classify(b.Cels(), raw)
}

func (p *Parser) classify(cels []examine.Cel, raw string) Result {
	if len(raw) != examine.Positions {
		panic(fmt.Sprintf("acctocr: classify called with %d character read %q", len(raw), raw))
	}
	illegible := strings.Count(raw, string(Illegible))
	if illegible == 0 && IsValid(raw) {
		return Result{Status: StatusClean, Raw: raw, Digits: raw}
	}
	if illegible > 1 {
		return Result{Status: StatusIllegible, Raw: raw}
	}

	candidates := p.repairs(cels, raw)
	switch {
	case len(candidates) == 1:
		return Result{Status: StatusCorrected, Raw: raw, Digits: candidates[0]}
	case len(candidates) > 1:
		return Result{Status: StatusAmbiguous, Raw: raw, Candidates: candidates}
	case illegible == 0:
		return Result{Status: StatusError, Raw: raw}
	default:
		return Result{Status: StatusIllegible, Raw: raw}
	}
}

// repairs lists checksum-valid single substitutions of raw, position-major
// then digit ascending.
func (p *Parser) repairs(cels []examine.Cel, raw string) []string {
	var out []string
	switch strings.Count(raw, string(Illegible)) {
	case 0:
		for pos := 0; pos < examine.Positions; pos++ {
			out = p.repairsAt(cels[pos], raw, out)
		}
	case 1:
		out = p.repairsAt(cels[strings.IndexByte(raw, Illegible)], raw, out)
	default:
		panic(fmt.Sprintf("acctocr: repair search on %q with more than one illegible digit", raw))
	}
	return out
}

func (p *Parser) repairsAt(cel examine.Cel, raw string, out []string) []string {
	buf := []byte(raw)
	for _, d := range p.font.OneOffCell(cel.Cell) {
		buf[cel.CharPos] = byte('0' + d)
		if candidate := string(buf); IsValid(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// verify classifies without repairs: any illegible digit wins over a bad
// checksum.
func verify(raw string) Result {
	switch {
	case strings.IndexByte(raw, Illegible) >= 0:
		return Result{Status: StatusIllegible, Raw: raw}
	case IsValid(raw):
		return Result{Status: StatusClean, Raw: raw, Digits: raw}
	default:
		return Result{Status: StatusError, Raw: raw}
	}
}

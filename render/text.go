package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/submersibletoaster/acctocr"
)

const (
	illegibleSuffix = " ILL"
	errorSuffix     = " ERR"
	ambiguousSuffix = " AMB"
)

// Text renders a result the way reports expect it: the account number,
// followed by ILL, ERR or AMB and the candidates when it is not good.
func Text(r acctocr.Result) string {
	switch r.Status {
	case acctocr.StatusClean, acctocr.StatusCorrected:
		return r.Digits
	case acctocr.StatusIllegible:
		return r.Raw + illegibleSuffix
	case acctocr.StatusError:
		return r.Raw + errorSuffix
	case acctocr.StatusAmbiguous:
		return r.Raw + ambiguousSuffix + " [" + strings.Join(r.Candidates, ", ") + "]"
	default:
		return r.Raw
	}
}

// styles colour whole result lines by status
var styles = map[acctocr.Status]color.Color{
	acctocr.StatusClean:     color.FgGreen,
	acctocr.StatusCorrected: color.FgCyan,
	acctocr.StatusIllegible: color.FgRed,
	acctocr.StatusError:     color.FgRed,
	acctocr.StatusAmbiguous: color.FgYellow,
}

// Writer writes one rendered result per line.
type Writer struct {
	w     *bufio.Writer
	color bool
}

// NewWriter writes to w, wrapping lines in ANSI colours when useColor is set.
func NewWriter(w io.Writer, useColor bool) *Writer {
	return &Writer{w: bufio.NewWriter(w), color: useColor}
}

// Write renders r as one line.
func (w *Writer) Write(r acctocr.Result) error {
	line := Text(r)
	if c, ok := styles[r.Status]; ok && w.color {
		line = c.Sprint(line)
	}
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush writes any buffered lines.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

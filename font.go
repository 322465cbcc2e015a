package acctocr

import (
	"github.com/submersibletoaster/acctocr/glyph"
)

var myFont *glyph.Font
var defaultParser *Parser

func init() {
	myFont = glyph.MustFont(glyph.ReferenceLines)
	defaultParser = NewParser()
}

// GetFont returns the reference digit font shared by all default parsers.
func GetFont() *glyph.Font {
	return myFont
}

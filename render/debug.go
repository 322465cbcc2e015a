package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
	"github.com/submersibletoaster/pixfont"

	"github.com/submersibletoaster/acctocr"
	"github.com/submersibletoaster/acctocr/examine"
	"github.com/submersibletoaster/acctocr/glyph"
)

const (
	// CharWidth - pixels per input character, horizontally
	CharWidth = 6
	// CharHeight - pixels per input character, vertically
	CharHeight = 8
	margin     = 4
)

var (
	black, _  = colorful.Hex("#000000")
	white, _  = colorful.Hex("#ffffff")
	good, _   = colorful.Hex("#2e8b57")
	fixed, _  = colorful.Hex("#00bcd4")
	doubt, _  = colorful.Hex("#ffc107")
	broken, _ = colorful.Hex("#e53935")
)

// positionTint picks the colour of digit position pos for result r.
func positionTint(r acctocr.Result, pos int) colorful.Color {
	switch r.Status {
	case acctocr.StatusError:
		return broken
	case acctocr.StatusCorrected:
		if r.Digits[pos] != r.Raw[pos] {
			return fixed
		}
	case acctocr.StatusAmbiguous:
		for _, c := range r.Candidates {
			if c[pos] != r.Raw[pos] {
				return doubt
			}
		}
	}
	if r.Raw[pos] == acctocr.Illegible {
		return broken
	}
	return good
}

// DebugImage rasterises the block's content lines, each digit position
// tinted by what the parser made of it, with the rendered result below.
func DebugImage(b *examine.Block, r acctocr.Result) *image.RGBA {
	return raster(b.Lines(), examine.Columns, func(col int) colorful.Color {
		return positionTint(r, col/glyph.Width)
	}, []label{{x: 0, s: Text(r)}})
}

// Sheet draws the ten templates of f side by side, each labelled with its
// digit.
func Sheet(f *glyph.Font) *image.RGBA {
	lines := make([]string, glyph.Height)
	labels := make([]label, 0, glyph.Digits)
	for d := 0; d < glyph.Digits; d++ {
		c := f.Template(d)
		for row := range lines {
			lines[row] += string(c[row][:]) + " "
		}
		labels = append(labels, label{x: d * (glyph.Width + 1) * CharWidth, s: strconv.Itoa(d)})
	}
	cols := glyph.Digits * (glyph.Width + 1)
	return raster(lines, cols, func(col int) colorful.Color {
		d := col / (glyph.Width + 1)
		return colorful.Hsv(float64(d)*36, 0.6, 0.8)
	}, labels)
}

type label struct {
	x int
	s string
}

func raster(lines []string, cols int, tint func(col int) colorful.Color, labels []label) *image.RGBA {
	font := pixfont.DefaultFont
	width := cols * CharWidth
	for _, l := range labels {
		if w := l.x + font.MeasureString(l.s); w > width {
			width = w
		}
	}
	rows := len(lines)
	img := image.NewRGBA(image.Rect(0, 0, width+2*margin, rows*CharHeight+font.GetHeight()+3*margin))
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	for row, line := range lines {
		for col := 0; col < cols; col++ {
			base := tint(col)
			bg := base.BlendLab(black, 0.75).Clamped()
			fg := base.BlendLab(white, 0.5).Clamped()
			cell := image.Rect(0, 0, CharWidth, CharHeight).Add(image.Pt(margin+col*CharWidth, margin+row*CharHeight))
			draw.Draw(img, cell, image.NewUniform(bg), image.Point{}, draw.Src)
			ch := byte(' ')
			if col < len(line) {
				ch = line[col]
			}
			drawChar(img, cell, ch, fg)
		}
	}

	y := margin*2 + rows*CharHeight
	for _, l := range labels {
		font.DrawString(img, margin+l.x, y, l.s, color.White)
	}
	return img
}

// drawChar paints the stroke of one input character inside cell.
func drawChar(img *image.RGBA, cell image.Rectangle, ch byte, c color.Color) {
	var stroke image.Rectangle
	switch ch {
	case ' ':
		return
	case '_':
		stroke = image.Rect(cell.Min.X, cell.Max.Y-2, cell.Max.X, cell.Max.Y)
	case '|':
		mid := cell.Min.X + CharWidth/2
		stroke = image.Rect(mid-1, cell.Min.Y, mid+1, cell.Max.Y)
	default:
		stroke = image.Rect(cell.Min.X+1, cell.Min.Y+2, cell.Max.X-1, cell.Max.Y-2)
	}
	draw.Draw(img, stroke, image.NewUniform(c), image.Point{}, draw.Src)
}

// Scale enlarges img by an integer factor without smoothing the strokes.
func Scale(img image.Image, factor uint) image.Image {
	if factor <= 1 {
		return img
	}
	return resize.Resize(uint(img.Bounds().Dx())*factor, 0, img, resize.NearestNeighbor)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	log.Debugf("wrote %s", path)
	return f.Close()
}

package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	lineHeight = 16
	margin     = 12
)

var (
	black = color.Gray{Y: 0}
	white = color.Gray{Y: 255}
	face  = basicfont.Face7x13
)

// canvas is a white grayscale image with a text cursor.
type canvas struct {
	img *image.Gray
}

func newCanvas(r image.Rectangle) *canvas {
	img := image.NewGray(r)
	draw.Draw(img, r, image.NewUniform(white), image.Point{}, draw.Src)
	return &canvas{img: img}
}

func (c *canvas) bounds() image.Rectangle {
	return c.img.Bounds()
}

// text draws s with its baseline at y.
func (c *canvas) text(x, y int, s string) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// centered draws s horizontally centered within the canvas.
func (c *canvas) centered(y int, s string) {
	b := c.bounds()
	w := font.MeasureString(face, s).Ceil()
	c.text(b.Min.X+(b.Dx()-w)/2, y, s)
}

// paragraph wraps s to width and draws it from y, returning the next
// baseline.
func (c *canvas) paragraph(x, y, width int, s string, center bool) int {
	for _, line := range wrap(s, width) {
		if center {
			c.centered(y, line)
		} else {
			c.text(x, y, line)
		}
		y += lineHeight
	}
	return y
}

// rule draws a horizontal line.
func (c *canvas) rule(x0, x1, y int) {
	for x := x0; x < x1; x++ {
		c.img.SetGray(x, y, black)
	}
}

// rect draws a 1px outline.
func (c *canvas) rect(r image.Rectangle) {
	c.rule(r.Min.X, r.Max.X, r.Min.Y)
	c.rule(r.Min.X, r.Max.X, r.Max.Y-1)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		c.img.SetGray(r.Min.X, y, black)
		c.img.SetGray(r.Max.X-1, y, black)
	}
}

// bar draws a progress bar filled to pct percent.
func (c *canvas) bar(r image.Rectangle, pct float64) {
	c.rect(r)
	pct = min(max(pct, 0), 100)
	fill := r.Inset(2)
	fill.Max.X = fill.Min.X + int(float64(fill.Dx())*pct/100)
	draw.Draw(c.img, fill, image.NewUniform(black), image.Point{}, draw.Src)
}

// wrap breaks s into lines no wider than width pixels. Explicit newlines
// are kept. Words longer than a line are split by rune.
func wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line string
		for _, word := range splitWords(para) {
			candidate := join(line, word)
			if fits(candidate, width) {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for !fits(word, width) && len([]rune(word)) > 1 {
				head, tail := splitAt(word, width)
				lines = append(lines, head)
				word = tail
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// join appends word to line; CJK runes are not separated by spaces.
func join(line, word string) string {
	if line == "" {
		return word
	}
	last := []rune(line)
	if isCJK(word) || isCJKRune(last[len(last)-1]) {
		return line + word
	}
	return line + " " + word
}

// splitWords splits on spaces and treats each CJK rune as its own word.
func splitWords(s string) []string {
	var words []string
	for _, field := range strings.Fields(s) {
		var latin []rune
		for _, r := range field {
			if isCJKRune(r) {
				if len(latin) > 0 {
					words = append(words, string(latin))
					latin = latin[:0]
				}
				words = append(words, string(r))
				continue
			}
			latin = append(latin, r)
		}
		if len(latin) > 0 {
			words = append(words, string(latin))
		}
	}
	return words
}

func fits(s string, width int) bool {
	return font.MeasureString(face, s).Ceil() <= width
}

func splitAt(s string, width int) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && fits(string(runes[:n+1]), width) {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func isCJK(word string) bool {
	for _, r := range word {
		return isCJKRune(r)
	}
	return false
}

func isCJKRune(r rune) bool {
	return r >= 0x2E80 && r <= 0x9FFF || r >= 0xF900 && r <= 0xFAFF || r >= 0xFF00 && r <= 0xFFEF || r >= 0x3000 && r <= 0x303F
}

package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/christmascoding/regelungsmaster/internal/viz"
)

const (
	svgCellW = 8
	svgCellH = 16
	svgDotR  = 2
)

// brailleBits maps a bit of a braille rune to its sub-pixel position
// inside the character cell, matching the canvas layout.
var brailleBits = [8][2]int{
	{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {0, 3}, {1, 3},
}

// CanvasSVG renders a braille canvas as an SVG document, turning each
// set sub-pixel into a small circle. Non-braille cells (axis and marker
// glyphs) come out as text.
func CanvasSVG(c *viz.Canvas) string {
	var b strings.Builder
	width := c.Width * svgCellW
	height := c.Height * svgCellH

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#101418"/>`+"\n", width, height)

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			switch {
			case r == ' ':
			case r >= 0x2800 && r <= 0x28FF:
				bits := int(r - 0x2800)
				for bit, pos := range brailleBits {
					if bits&(1<<bit) == 0 {
						continue
					}
					cx := col*svgCellW + pos[0]*(svgCellW/2) + svgCellW/4
					cy := row*svgCellH + pos[1]*(svgCellH/4) + svgCellH/8
					fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="#7fd4ff"/>`+"\n",
						cx, cy, svgDotR)
				}
			default:
				fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="monospace" font-size="%d" fill="#ffd37f">%c</text>`+"\n",
					col*svgCellW, (row+1)*svgCellH-svgCellH/4, svgCellH-2, r)
			}
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// WriteCanvasSVG writes the canvas SVG to path.
func WriteCanvasSVG(path string, c *viz.Canvas) error {
	if err := os.WriteFile(path, []byte(CanvasSVG(c)), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots per character cell, Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-dot drawing surface for complex-plane charts. Dot
// coordinates are data coordinates; the canvas maps them to sub-pixels
// through the bounds set with Fit.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	minX, maxX float64
	minY, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		minX:   -1, maxX: 1,
		minY: -1, maxY: 1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Fit sets the data bounds from a point cloud, padded by 10% per axis.
// Degenerate ranges widen to a unit span so a single point stays drawable.
func (c *Canvas) Fit(xs, ys []float64) {
	var minX, maxX, minY, maxY float64
	seeded := false
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		if !seeded {
			minX, maxX = xs[i], xs[i]
			minY, maxY = ys[i], ys[i]
			seeded = true
			continue
		}
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	if !seeded {
		return
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	c.minX = minX - rangeX*0.1
	c.maxX = maxX + rangeX*0.1
	c.minY = minY - rangeY*0.1
	c.maxY = maxY + rangeY*0.1
}

// subPixel projects a data point onto sub-pixel coordinates
// (Width*2 x Height*4, y growing downward).
func (c *Canvas) subPixel(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	px := int((x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1))
	py := int((c.maxY - y) / (c.maxY - c.minY) * float64(c.Height*4-1))
	if px < 0 || py < 0 || px >= c.Width*2 || py >= c.Height*4 {
		return 0, 0, false
	}
	return px, py, true
}

// Dot plots a single data point.
func (c *Canvas) Dot(x, y float64) {
	px, py, ok := c.subPixel(x, y)
	if !ok {
		return
	}
	col := px / 2
	row := py / 4
	c.Grid[row][col] |= rune(pixelMap[py%4][px%2])
}

// Line draws a straight segment between two data points (Bresenham over
// sub-pixels).
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	px0, py0, ok0 := c.subPixel(x0, y0)
	px1, py1, ok1 := c.subPixel(x1, y1)
	if !ok0 || !ok1 {
		return
	}

	dx := absInt(px1 - px0)
	dy := absInt(py1 - py0)
	sx := -1
	if px0 < px1 {
		sx = 1
	}
	sy := -1
	if py0 < py1 {
		sy = 1
	}
	err := dx - dy

	for {
		col := px0 / 2
		row := py0 / 4
		c.Grid[row][col] |= rune(pixelMap[py0%4][px0%2])
		if px0 == px1 && py0 == py1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			px0 += sx
		}
		if e2 < dx {
			err += dx
			py0 += sy
		}
	}
}

// Mark overwrites the character cell under a data point with a glyph,
// used for pole/zero/centroid markers on top of the dot field.
func (c *Canvas) Mark(x, y float64, glyph rune) {
	px, py, ok := c.subPixel(x, y)
	if !ok {
		return
	}
	c.Grid[py/4][px/2] = glyph
}

// Axes draws the real and imaginary axes where they cross the bounds.
func (c *Canvas) Axes() {
	if c.minX <= 0 && c.maxX >= 0 {
		step := (c.maxY - c.minY) / float64(c.Height*4)
		for y := c.minY; y <= c.maxY; y += step {
			c.Dot(0, y)
		}
	}
	if c.minY <= 0 && c.maxY >= 0 {
		step := (c.maxX - c.minX) / float64(c.Width*2)
		for x := c.minX; x <= c.maxX; x += step {
			c.Dot(x, 0)
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

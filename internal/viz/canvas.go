package viz

import "strings"

// Braille cells pack 2x4 dots per character:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface. A canvas of Width x Height
// character cells addresses (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set turns on the dot at (x, y) in dot coordinates. Out-of-range
// coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine rasterizes a segment with Bresenham stepping.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle rasterizes a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
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

// Viewport maps a world rectangle onto the dot grid of a canvas. World
// Y grows upward and dot Y grows downward, so the mapping flips Y.
type Viewport struct {
	MinX, MinY   float64
	MaxX, MaxY   float64
	DotsW, DotsH int
}

// NewViewport fits the given world rectangle to the canvas. A
// degenerate axis is widened to one unit so the mapping stays defined.
func NewViewport(minX, minY, maxX, maxY float64, c *Canvas) Viewport {
	if maxX-minX <= 0 {
		maxX = minX + 1
	}
	if maxY-minY <= 0 {
		maxY = minY + 1
	}
	return Viewport{
		MinX: minX, MinY: minY,
		MaxX: maxX, MaxY: maxY,
		DotsW: c.Width * 2, DotsH: c.Height * 4,
	}
}

// Dot converts a world point to dot coordinates.
func (v Viewport) Dot(x, y float64) (int, int) {
	dx := (x - v.MinX) / (v.MaxX - v.MinX) * float64(v.DotsW-1)
	dy := (y - v.MinY) / (v.MaxY - v.MinY) * float64(v.DotsH-1)
	return int(dx), v.DotsH - 1 - int(dy)
}

// Span converts a world length to a dot count along X, at least 1.
func (v Viewport) Span(length float64) int {
	d := int(length / (v.MaxX - v.MinX) * float64(v.DotsW-1))
	if d < 1 {
		return 1
	}
	return d
}

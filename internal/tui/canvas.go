package tui

import (
	"strings"
)

// Braille cells hold a 2x4 dot grid:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// canvas is a braille raster addressed in sub-pixels: (Width*2) x (Height*4).
type canvas struct {
	Width, Height int
	Grid          [][]rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

func (c *canvas) set(x, y int) {
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

func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := intAbs(x1 - x0)
	dy := intAbs(y1 - y0)
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
		c.set(x0, y0)
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

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// frame maps world coordinates onto a canvas, y up.
type frame struct {
	c                      *canvas
	xmin, xmax, ymin, ymax float64
}

func newFrame(c *canvas, xmin, xmax, ymin, ymax float64) frame {
	if xmax <= xmin {
		xmax = xmin + 1
	}
	if ymax <= ymin {
		ymax = ymin + 1
	}
	return frame{c: c, xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax}
}

func (f frame) pixel(x, y float64) (int, int) {
	pw := float64(f.c.Width*2 - 1)
	ph := float64(f.c.Height*4 - 1)
	px := (x - f.xmin) / (f.xmax - f.xmin) * pw
	py := (1 - (y-f.ymin)/(f.ymax-f.ymin)) * ph
	return int(px + 0.5), int(py + 0.5)
}

func (f frame) point(x, y float64) {
	f.c.set(f.pixel(x, y))
}

func (f frame) line(x0, y0, x1, y1 float64) {
	ax, ay := f.pixel(x0, y0)
	bx, by := f.pixel(x1, y1)
	f.c.line(ax, ay, bx, by)
}

// hline draws a horizontal rule at world height y, one dot every gap sub-pixels.
func (f frame) hline(y float64, gap int) {
	if gap < 1 {
		gap = 1
	}
	_, py := f.pixel(f.xmin, y)
	for x := 0; x < f.c.Width*2; x += gap {
		f.c.set(x, py)
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

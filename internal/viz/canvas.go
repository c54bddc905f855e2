package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bouncebox/internal/render"
)

// Braille Patterns: 2x4 dots
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

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell also remembers the color of
// the last rect that lit one of its dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]render.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]render.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]render.Color, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the dot at (x, y) in dot coordinates. The canvas spans
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

func (c *Canvas) Lit(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return int(c.Grid[row][col]-blank)&pixelMap[y%4][x%2] != 0
}

// FillRect lights every dot in the inclusive range and inks the covered
// cells.
func (c *Canvas) FillRect(x0, y0, x1, y1 int, ink render.Color) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.Width*2-1), min(y1, c.Height*4-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y)
			c.Ink[y/4][x/2] = ink
		}
	}
}

// DrawLine lights every dot on the segment from (x0,y0) to (x1,y1) and
// inks the cells it crosses. Dots off the canvas are skipped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink render.Color) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}

	x, y := x0, y0
	e := dx + dy
	for {
		if x >= 0 && y >= 0 && x < c.Width*2 && y < c.Height*4 {
			c.Set(x, y)
			c.Ink[y/4][x/2] = ink
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = render.Color{}
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

// Colored renders the grid with each lit cell in its ink color.
func (c *Canvas) Colored() string {
	var b strings.Builder
	styles := make(map[render.Color]lipgloss.Style)
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			ink := c.Ink[row][col]
			st, ok := styles[ink]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(ink)))
				styles[ink] = st
			}
			b.WriteString(st.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/render"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if !c.Lit(0, 0) || !c.Lit(3, 3) {
		t.Fatal("expected dots lit")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected ⠁, got %q", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected ⢀, got %q", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Lit(0, 0) || c.Grid[0][0] != blank {
		t.Error("expected dot cleared")
	}

	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Lit(-1, 0) || c.Lit(4, 0) {
		t.Error("out of range dots should be ignored")
	}
}

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(4, 2)
	red := render.Color{R: 1, A: 1}
	c.FillRect(-5, -5, 1, 3, red)

	if c.Grid[0][0] != 0x28ff {
		t.Errorf("expected full cell, got %q", c.Grid[0][0])
	}
	if c.Ink[0][0] != red {
		t.Errorf("expected red ink, got %+v", c.Ink[0][0])
	}
	if c.Grid[1][0] != blank || c.Grid[0][1] != blank {
		t.Error("fill leaked outside its range")
	}

	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("expected blank canvas after clear")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	red := render.Color{R: 1, A: 1}

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		lit            [][2]int
		unlit          [][2]int
	}{
		{"diagonal", 0, 0, 7, 7, [][2]int{{0, 0}, {3, 3}, {7, 7}}, [][2]int{{1, 0}, {0, 7}}},
		{"reversed", 7, 7, 0, 0, [][2]int{{0, 0}, {4, 4}, {7, 7}}, [][2]int{{7, 0}}},
		{"clipped horizontal", -3, 1, 10, 1, [][2]int{{0, 1}, {7, 1}}, [][2]int{{0, 0}, {0, 2}}},
		{"single dot", 2, 5, 2, 5, [][2]int{{2, 5}}, [][2]int{{2, 4}, {3, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(4, 2)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, red)
			for _, p := range tt.lit {
				if !c.Lit(p[0], p[1]) {
					t.Errorf("expected dot %v lit", p)
				}
				if c.Ink[p[1]/4][p[0]/2] != red {
					t.Errorf("expected red ink at %v", p)
				}
			}
			for _, p := range tt.unlit {
				if c.Lit(p[0], p[1]) {
					t.Errorf("expected dot %v dark", p)
				}
			}
		})
	}
}

func TestTermRendererFloor(t *testing.T) {
	r := NewTermRenderer(160, 150, 8)
	r.RenderFrame(16)
	if r.Canvas().Lit(0, 18) {
		t.Error("floor drawn without Floor set")
	}

	r.Floor = true
	r.RenderFrame(16)
	// 150/8 rounds up to 19 dot rows; the floor sits on the last one
	for x := 0; x < r.Canvas().Width*2; x++ {
		if !r.Canvas().Lit(x, 18) {
			t.Fatalf("expected floor dot at (%d,18)", x)
		}
		if r.Canvas().Lit(x, 17) || r.Canvas().Lit(x, 19) {
			t.Fatalf("floor leaked off row 18 at x=%d", x)
		}
	}
	if r.Canvas().Ink[4][0] != FloorInk {
		t.Errorf("expected floor ink, got %+v", r.Canvas().Ink[4][0])
	}
}

func TestTermRendererRasterizes(t *testing.T) {
	r := NewTermRenderer(160, 160, 8)
	if r.Canvas().Width != 10 || r.Canvas().Height != 5 {
		t.Fatalf("expected 10x5 cells, got %dx%d", r.Canvas().Width, r.Canvas().Height)
	}

	r.SetClearColor(boxes.ClearColor)
	r.DrawRect(render.Rect{X: 0, Y: 0, W: 16, H: 32, Color: render.Color{G: 1, A: 1}})
	r.DrawRect(render.Rect{X: 80, Y: 150, W: 2, H: 2, Color: render.Color{B: 1, A: 1}})

	if r.Canvas().Lit(0, 0) {
		t.Error("rects must not appear before the flush")
	}
	if st := r.RenderFrame(16); st != render.StatusOK {
		t.Fatalf("expected ok, got %d", st)
	}

	if r.Canvas().Grid[0][0] != 0x28ff {
		t.Errorf("expected first cell filled, got %q", r.Canvas().Grid[0][0])
	}
	if !r.Canvas().Lit(10, 18) {
		t.Error("small rect should still light one dot")
	}
	if r.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", r.Frames())
	}

	r.RenderFrame(16)
	if r.Canvas().Lit(0, 0) {
		t.Error("expected empty frame after the batch was flushed")
	}
}

func TestTermRendererResize(t *testing.T) {
	r := NewTermRenderer(160, 160, 8)
	r.Resize(800, 600)
	if r.Canvas().Width != 50 || r.Canvas().Height != 19 {
		t.Errorf("expected 50x19 cells, got %dx%d", r.Canvas().Width, r.Canvas().Height)
	}
	x, y := r.ToLogical(0, 0)
	if x != 8 || y != 16 {
		t.Errorf("expected cell center (8,16), got (%f,%f)", x, y)
	}
}

func TestModelDrivesHost(t *testing.T) {
	m, err := NewModel(800, 600, 16, boxes.WithSeed(9))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	defer m.Close()

	sim := m.Host().Simulation()
	if sim.Len() != boxes.DefaultInitialBoxes {
		t.Fatalf("expected %d boxes, got %d", boxes.DefaultInitialBoxes, sim.Len())
	}

	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.presented != 1 || len(m.energyHistory) != 1 {
		t.Errorf("expected one presented frame, got %d", m.presented)
	}

	next, _ = m.Update(tea.MouseMsg{X: padLeft + 3, Y: padTop + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if sim.Len() != boxes.DefaultInitialBoxes+1 {
		t.Errorf("expected click to spawn a box, got %d", sim.Len())
	}

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if sim.Len() != boxes.DefaultInitialBoxes+1 {
		t.Error("click in the padding should not spawn")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	w, h := sim.Size()
	if w != uint32((120-statsWidth-2*padLeft-1)*2*DefaultScale) || h != uint32((40-2*padTop)*4*DefaultScale) {
		t.Errorf("unexpected logical size %dx%d", w, h)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.presented != 1 {
		t.Errorf("paused model should not step, presented %d", m.presented)
	}

	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}
}

func TestNextThemeCycles(t *testing.T) {
	defer SetTheme(ThemeSlate.Name)

	seen := map[string]bool{}
	for range Themes {
		seen[CurrentTheme.Name] = true
		NextTheme()
	}
	if len(seen) != len(Themes) || CurrentTheme.Name != ThemeSlate.Name {
		t.Errorf("theme cycle visited %v", seen)
	}
}

package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/bridge"
	"github.com/san-kum/bouncebox/internal/render"
)

const (
	historyCapacity = 120
	minCols         = 10
	minRows         = 5
	gifPath         = "bouncebox.gif"
)

type TickMsg time.Time

// Model is the platform side of the terminal front end. It owns the Host
// and forwards tea messages to its entry points.
type Model struct {
	host     *bridge.Host
	provider *Provider

	frameMs       float32
	width, height uint32
	running       bool
	showHelp      bool
	status        render.Status
	presented     int
	energyHistory []float64

	recording bool
	frames    []*image.Paletted
}

// NewModel acquires a terminal surface of width x height logical pixels and
// starts a session on it. frameMs is both the tick period and the step delta.
func NewModel(width, height uint32, frameMs float32, opts ...boxes.Option) (Model, error) {
	p := &Provider{Scale: DefaultScale, Floor: true}
	host := bridge.NewHost(p, opts...)
	if err := host.NativeInit(width, height); err != nil {
		return Model{}, err
	}
	host.DemoInit(width, height)

	return Model{
		host:          host,
		provider:      p,
		frameMs:       frameMs,
		width:         width,
		height:        height,
		running:       true,
		status:        render.StatusOK,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	d := time.Duration(float64(m.frameMs) * float64(time.Millisecond))
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Close ends the session and releases the surface.
func (m Model) Close() { m.host.DemoCleanup() }

func (m Model) Host() *bridge.Host { return m.host }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.host.DemoInit(m.width, m.height)
			m.energyHistory = m.energyHistory[:0]
		case "s":
			m.host.DemoTouch(float32(m.width)/2, float32(m.height)/4)
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				if err := saveGIF(gifPath, m.frames); err != nil {
					log.Printf("[viz] gif: %v", err)
				}
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		if m.showHelp || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		col, row := msg.X-padLeft, msg.Y-padTop
		r := m.provider.Renderer()
		if r == nil || col < 0 || row < 0 || col >= r.Canvas().Width || row >= r.Canvas().Height {
			break
		}
		m.host.DemoTouch(r.ToLogical(col, row))

	case tea.WindowSizeMsg:
		cols := max(msg.Width-statsWidth-2*padLeft-1, minCols)
		rows := max(msg.Height-2*padTop, minRows)
		m.width = uint32(cols * 2 * DefaultScale)
		m.height = uint32(rows * 4 * DefaultScale)
		m.host.DemoResize(m.width, m.height)

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.status = render.Status(m.host.DemoFrame(m.frameMs))
	if !m.status.OK() {
		return
	}
	m.presented++

	m.energyHistory = append(m.energyHistory, m.host.Simulation().KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	if m.recording {
		m.frames = append(m.frames, captureFrame(m.provider.Renderer().Canvas()))
	}
}

func (m Model) View() string {
	r := m.provider.Renderer()
	if r == nil {
		return "no surface\n"
	}
	canvasView := canvasStyle.Render(r.Canvas().Colored())

	sim := m.host.Simulation()
	var s strings.Builder
	s.WriteString(headerStyle().Render("BOUNCEBOX") + "\n")

	status := "RUNNING"
	switch {
	case !m.status.OK():
		status = "FRAME DROPPED"
	case !m.running:
		status = "PAUSED"
	case m.recording:
		status = fmt.Sprintf("RECORDING (%d)", len(m.frames))
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	fill := float64(sim.Len()) / float64(sim.Cap())
	s.WriteString(labelStyle.Render("Boxes") + valueStyle.Render(fmt.Sprintf("%d/%d ", sim.Len(), sim.Cap())) + ProgressBar(fill, 10) + "\n")
	w, h := sim.Size()
	s.WriteString(labelStyle.Render("Screen") + valueStyle.Render(fmt.Sprintf("%dx%d", w, h)) + "\n")
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.presented)) + "\n")
	st := sim.Stats()
	s.WriteString(labelStyle.Render("Bounces") + valueStyle.Render(fmt.Sprintf("%d floor, %d wall", st.FloorBounces, st.WallBounces)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")

	s.WriteString(helpStyle().Render("─────────────────────\nClick:Drop  S:Drop  SP:Pause\nR:Restart  T:Theme  G:Record\n?:Help  Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle().Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Click    - Drop a box there         ║
║  S        - Drop a box top center    ║
║  Space    - Pause/Resume             ║
║  R        - Restart with fresh boxes ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// captureFrame paints the canvas dots into a two-color image, 4x4 pixels
// per dot.
func captureFrame(c *Canvas) *image.Paletted {
	const dot = 4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*2*dot, c.Height*4*dot), color.Palette{color.Black, color.White})
	for y := 0; y < c.Height*4; y++ {
		for x := 0; x < c.Width*2; x++ {
			if !c.Lit(x, y) {
				continue
			}
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, 1)
				}
			}
		}
	}
	return img
}

func saveGIF(path string, frames []*image.Paletted) error {
	if len(frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

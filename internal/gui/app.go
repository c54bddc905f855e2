// Package gui is the raylib desktop front end. The window is the surface;
// the App loop turns window events into bridge.Host calls.
package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bouncebox/internal/audio"
	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/bridge"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

type App struct {
	Host    *bridge.Host
	Window  *Window
	Running bool
	ShowHUD bool
	Audio   *audio.Processor

	width, height int
}

func NewApp(opts ...boxes.Option) *App {
	w := &Window{Title: "bouncebox", TargetFPS: 60}
	return &App{
		Host:    bridge.NewHost(w, opts...),
		Window:  w,
		Running: true,
		ShowHUD: true,
	}
}

// Run opens a width x height window and blocks until it is closed. With
// sound set, kinetic energy and floor bounces drive an audio stream; a
// missing audio device only disables sound.
func Run(width, height uint32, sound bool, opts ...boxes.Option) error {
	app := NewApp(opts...)
	if err := app.Host.NativeInit(width, height); err != nil {
		return err
	}
	defer app.Host.DemoCleanup()

	if sound {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			log.Printf("[gui] sound disabled: %v", err)
		} else {
			app.Audio = proc
			defer proc.Stop()
		}
	}

	app.width, app.height = rl.GetScreenWidth(), rl.GetScreenHeight()
	app.Host.DemoInit(uint32(app.width), uint32(app.height))
	app.Window.r.overlay = app.DrawHUD

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		if !a.Running {
			a.drawPaused()
			continue
		}
		if a.Host.DemoFrame(rl.GetFrameTime()*1000) == 0 {
			log.Printf("[gui] frame not presented")
		}
		if a.Audio != nil {
			sim := a.Host.Simulation()
			a.Audio.Update(sim.KineticEnergy(), sim.Stats().FloorBounces)
		}
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.width, a.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		a.Host.DemoResize(uint32(a.width), uint32(a.height))
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		a.Host.DemoTouch(pos.X, pos.Y)
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.Host.DemoInit(uint32(a.width), uint32(a.height))
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}
}

// drawPaused presents the last flushed frame without stepping.
func (a *App) drawPaused() {
	if a.Window.r == nil {
		return
	}
	a.Window.r.Present()
}

func (a *App) DrawHUD() {
	if !a.ShowHUD {
		return
	}
	sim := a.Host.Simulation()

	rl.DrawText("bouncebox", 20, 50, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("%d/%d boxes", sim.Len(), sim.Cap()), 20, 76, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(a.width-110), 20, 16, col)

	rl.DrawText("[CLICK] DROP  [SPACE] PAUSE  [R] RESET  [H] HUD  [ESC] QUIT", 20, int32(a.height-24), 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.width-80), int32(a.height-24), 14, ColTextDim)

	if a.Audio != nil && a.Audio.Active {
		rl.DrawText("SOUND [ON]", 20, int32(a.height-48), 14, ColText)
	} else {
		rl.DrawText("SOUND [OFF]", 20, int32(a.height-48), 14, ColTextDim)
	}
}

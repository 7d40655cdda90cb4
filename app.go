//go:build !headless

package main

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	scopeMargin  = 10
	scopeHeight  = 260
	sliderWidth  = 40
	sliderHeight = 120
	sliderGap    = 30
)

var sliderLabels = [...]string{"SIN", "SQR", "SAW", "TRI", "CUS", "FREQ", "Q"}

// view is the part of the synth state the GUI draws, captured once per
// control tick so rendering never touches the state.
type view struct {
	kinds  []Waveform
	levels []float32
	cutoff float32
	q      float32
	mode   FilterMode
}

type App struct {
	synth        *Synth
	keyboard     *Keyboard
	held         map[string]bool
	pressed      []string
	pendingPatch *Patch
	view         view
	painter      *Painter
	labels       *LabelAtlas
	preview      []Smp
	shouldExit   bool
}

func runGui(synth *Synth) error {
	app := &App{
		synth:    synth,
		keyboard: NewKeyboard(),
		held:     make(map[string]bool),
		preview:  make([]Smp, 0, synth.Scope().Size()),
	}
	return WithGL("wave", app)
}

func (app *App) Init() error {
	painter, err := CreatePainter()
	if err != nil {
		return err
	}
	app.painter = painter
	labels, err := CreateLabelAtlas(sliderLabels[:])
	if err != nil {
		return err
	}
	app.labels = labels
	app.synth.Tick(app.capture)
	return nil
}

func (app *App) IsRunning() bool {
	return !app.shouldExit
}

func keyName(key glfw.Key, scancode int) string {
	switch key {
	case glfw.KeyEscape:
		return "Escape"
	case glfw.KeySpace:
		return "Space"
	case glfw.KeyEnter:
		return "Enter"
	}
	return glfw.GetKeyName(key, scancode)
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	name := keyName(key, scancode)
	if name == "" {
		return
	}
	switch action {
	case glfw.Press:
		if name == "Escape" {
			app.shouldExit = true
			return
		}
		if mods&glfw.ModControl != 0 {
			app.handleClipboard(name)
			return
		}
		app.held[name] = true
		app.pressed = append(app.pressed, name)
	case glfw.Release:
		delete(app.held, name)
	}
}

func (app *App) handleClipboard(name string) {
	switch name {
	case "c":
		var p Patch
		app.synth.Tick(func(state *State) { p = PatchFromState(state) })
		if err := CopyPatch(p); err != nil {
			logger.Warn("copy patch failed", "err", err)
			return
		}
		logger.Info("patch copied", "patch", p.String())
	case "v":
		p, err := PastePatch()
		if err != nil {
			logger.Warn("paste patch failed", "err", err)
			return
		}
		app.pendingPatch = &p
	}
}

func (app *App) OnFramebufferSize(width, height int) {
	logger.Debug("framebuffer size", "width", width, "height", height)
}

func (app *App) BgColor() (r, g, b, a float32) {
	return 245 / 255.0, 245 / 255.0, 245 / 255.0, 1
}

func (app *App) capture(state *State) {
	v := &app.view
	v.kinds = v.kinds[:0]
	v.levels = v.levels[:0]
	for slot := range state.NumTables() {
		v.kinds = append(v.kinds, state.Table(slot).Kind())
		v.levels = append(v.levels, state.Level(slot))
	}
	f := state.Filter()
	v.cutoff, v.q, v.mode = f.Cutoff(), f.Q(), f.Mode()
}

func (app *App) Update() error {
	held := func(key string) bool { return app.held[key] }
	pressed := app.pressed
	patch := app.pendingPatch
	app.synth.Tick(func(state *State) {
		app.keyboard.Apply(held, pressed, state)
		if patch != nil {
			patch.Apply(state)
		}
		app.capture(state)
	})
	if patch != nil {
		logger.Info("patch applied", "patch", patch.String())
	}
	app.pressed = app.pressed[:0]
	app.pendingPatch = nil
	return nil
}

func (app *App) Render() error {
	scopeRect := image.Rect(scopeMargin, scopeMargin,
		max(fbSize.X-scopeMargin, scopeMargin+1), scopeMargin+scopeHeight)
	app.preview = app.synth.Scope().Snapshot(app.preview)
	app.painter.DrawScope(app.preview, scopeRect)

	x := scopeMargin
	y := scopeRect.Max.Y + sliderGap
	drawSlider := func(label string, value float32) error {
		r := image.Rect(x, y, x+sliderWidth, y+sliderHeight)
		app.painter.DrawSlider(r, value)
		if err := app.labels.DrawLabel(label, x+sliderWidth/2, r.Max.Y+4); err != nil {
			return err
		}
		x += sliderWidth + sliderGap
		return nil
	}
	for slot, level := range app.view.levels {
		if err := drawSlider(sliderLabels[app.view.kinds[slot]], level); err != nil {
			return err
		}
	}
	if err := drawSlider("FREQ", ScaleUnit(app.view.cutoff, MinCutoff, MaxCutoff)); err != nil {
		return err
	}
	return drawSlider("Q", ScaleUnit(app.view.q, 0, 1))
}

func (app *App) Close() error {
	app.synth.Tick(app.keyboard.ReleaseAll)
	if app.labels != nil {
		app.labels.Close()
	}
	if app.painter != nil {
		app.painter.Close()
	}
	return nil
}

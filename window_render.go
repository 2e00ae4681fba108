package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandelbrot/config"
	"github.com/stewi1014/glmandelbrot/inspect"
	"github.com/stewi1014/glmandelbrot/programs"
	"github.com/stewi1014/glmandelbrot/render"
	"github.com/stewi1014/glmandelbrot/site"
	"github.com/stewi1014/glmandelbrot/viewport"
)

// NewRenderWindow opens the GTK window the fractal is drawn in.
// View updates are sent over conn to the info window.
func NewRenderWindow(
	app *gtk.Application,
	cfg config.Config,
	conn net.Conn,
	ctx context.Context,
	quit func(error),
) *RenderWindow {
	var err error
	w := &RenderWindow{
		debug:  cfg.Debug,
		quit:   quit,
		sender: inspect.NewSender(ctx, conn),
	}
	w.session = newSession(w, cfg.KeyMap())
	w.session.controller.OnChange(func(viewport.ViewState) {
		w.sendView()
	})

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetTitle(site.Title(cfg.Page))
	if cfg.Width > 0 && cfg.Height > 0 {
		w.SetDefaultSize(cfg.Width, cfg.Height)
	} else {
		w.SetDefaultSize(getWindowSize())
	}
	w.SetResizable(false)

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("resize", w.glaResize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK),
	)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)
	w.Connect("key-press-event", w.key)

	w.Add(w.gla)
	w.ShowAll()

	return w
}

func getWindowSize() (width, height int) {
	width = 1200
	height = 800

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	width = int(float32(monitor.GetGeometry().GetWidth()) * .6)
	height = int(float32(monitor.GetGeometry().GetHeight()) * .6)
	return
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	viewport.Listeners
	gla *gtk.GLArea

	debug bool
	quit  func(error)

	session     *session
	program     *glProgram
	programName string
	pending     func()

	// Framebuffer size, fixed at the first resize.
	width  int
	height int

	pointer    mgl64.Vec2
	hasPointer bool
	sender     *inspect.Sender
}

var _ render.Scheduler = &RenderWindow{}

// RequestFrame runs fn from the next render signal. GTK paces render
// signals with the monitor's frame clock.
func (w *RenderWindow) RequestFrame(fn func()) {
	w.pending = fn
	w.gla.QueueRender()
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := initGL(w.debug)
	if err != nil {
		w.quit(err)
		return
	}

	program := programs.GetProgram(0)
	w.programName = program.Name
	w.program, err = newGLProgram(program)
	if err != nil {
		w.quit(err)
	}
}

// glaResize starts rendering at the first size GTK gives the area.
// Later sizes are ignored; the window is not resizable.
func (w *RenderWindow) glaResize(gla *gtk.GLArea, width, height int) {
	if w.session.renderer != nil {
		slog.Debug("ignoring resize", "width", width, "height", height)
		return
	}
	if w.program == nil || width <= 0 || height <= 0 {
		return
	}

	w.width, w.height = width, height
	slog.Info("rendering", "width", width, "height", height)
	w.session.start(w.program, w, width, height)
	w.sendView()
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) bool {
	fn := w.pending
	w.pending = nil
	if fn != nil {
		fn()
	}
	return true
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	if w.program != nil {
		w.program.Delete()
		w.program = nil
	}
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) bool {
	button := gdk.EventButtonNewFromEvent(event)

	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		w.EmitDragStart(mgl64.Vec2{button.X(), button.Y()})
	case gdk.EVENT_BUTTON_RELEASE:
		w.EmitDragEnd()
	}
	return true
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) bool {
	motion := gdk.EventMotionNewFromEvent(event)
	x, y := motion.MotionVal()

	w.setPointer(x, y)
	w.EmitDragMove(mgl64.Vec2{x, y})
	if !w.session.controller.Drag().Active {
		w.sendView()
	}
	return true
}

func (w *RenderWindow) key(win *gtk.ApplicationWindow, event *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(event)
	w.EmitKeyPress(gdk.KeyvalName(key.KeyVal()))
	return false
}

// setPointer records the pointer in framebuffer pixels, origin bottom left.
func (w *RenderWindow) setPointer(x, y float64) {
	if w.width == 0 || w.height == 0 {
		return
	}

	scale := float64(w.gla.GetScaleFactor())
	w.pointer = mgl64.Vec2{x * scale, float64(w.height) - y*scale}
	w.hasPointer = true
}

func (w *RenderWindow) sendView() {
	if w.session.renderer == nil {
		return
	}

	uniforms := w.session.renderer.Uniforms()
	view := w.session.controller.View()
	uniforms.SetView(view)

	w.sender.Send(inspect.Message{
		Program:    w.programName,
		View:       view,
		Uniforms:   uniforms,
		Pointer:    w.pointer,
		HasPointer: w.hasPointer,
	})
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandelbrot/config"
	"github.com/stewi1014/glmandelbrot/programs"
	"github.com/stewi1014/glmandelbrot/render"
	"github.com/stewi1014/glmandelbrot/site"
	"github.com/stewi1014/glmandelbrot/viewport"
)

// NewGLFWWindow creates a fixed-size window with a current OpenGL 4.6 core context.
// glfw must already be initialised.
func NewGLFWWindow(width, height int, title string) (*GLFWWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(
		width,
		height,
		title,
		nil,
		nil,
	)

	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &GLFWWindow{
		Window: window,
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	w.SetMouseButtonCallback(w.mouseButton)
	w.SetCursorPosCallback(w.cursorPos)
	w.SetKeyCallback(w.key)

	return w, nil
}

type GLFWWindow struct {
	*glfw.Window
	viewport.Listeners

	pending func()
}

var _ render.Scheduler = &GLFWWindow{}

// RequestFrame runs fn after the next buffer swap, which waits for vsync.
func (w *GLFWWindow) RequestFrame(fn func()) {
	w.pending = fn
}

// Run polls input and draws pending frames until the window is closed or ctx is done.
func (w *GLFWWindow) Run(ctx context.Context) {
	for !w.ShouldClose() && ctx.Err() == nil {
		glfw.PollEvents()

		fn := w.pending
		w.pending = nil
		if fn != nil {
			fn()
		}

		w.SwapBuffers()
	}
}

func (w *GLFWWindow) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		x, y := w.GetCursorPos()
		w.EmitDragStart(mgl64.Vec2{x, y})
	case glfw.Release:
		w.EmitDragEnd()
	}
}

func (w *GLFWWindow) cursorPos(_ *glfw.Window, x, y float64) {
	w.EmitDragMove(mgl64.Vec2{x, y})
}

func (w *GLFWWindow) key(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if !isKeyDown(action) {
		return
	}
	w.EmitKeyPress(glfw.GetKeyName(key, scancode))
}

// isKeyDown reports whether action is a press or a held key repeating.
func isKeyDown(action glfw.Action) bool {
	return action == glfw.Press || action == glfw.Repeat
}

func getMonitorSize() (width, height int) {
	width = 1200
	height = 800

	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}

	mode := monitor.GetVideoMode()
	if mode == nil {
		return
	}

	width = int(float32(mode.Width) * .6)
	height = int(float32(mode.Height) * .6)
	return
}

// runGLFW shows the viewer in a GLFW window until it is closed or ctx is done.
// It must be called from the locked main thread.
func runGLFW(ctx context.Context, cfg config.Config) error {
	err := glfw.Init()
	if err != nil {
		return fmt.Errorf("glfw.Init: %w", err)
	}
	defer glfw.Terminate()

	width, height := cfg.Width, cfg.Height
	if width == 0 || height == 0 {
		width, height = getMonitorSize()
	}

	w, err := NewGLFWWindow(width, height, site.Title(cfg.Page))
	if err != nil {
		return err
	}
	defer w.Destroy()

	err = initGL(cfg.Debug)
	if err != nil {
		return err
	}

	program, err := newGLProgram(programs.GetProgram(0))
	if err != nil {
		return err
	}
	defer program.Delete()

	s := newSession(w, cfg.KeyMap())

	fbWidth, fbHeight := w.GetFramebufferSize()
	slog.Info("rendering", "width", fbWidth, "height", fbHeight)
	s.start(program, w, fbWidth, fbHeight)

	w.Run(ctx)
	return nil
}

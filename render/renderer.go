// Package render drives the per-frame draw loop of the fractal viewer.
//
// A Renderer owns nothing platform specific. The window supplies a Backend
// that uploads uniforms and draws, and a Scheduler that calls back once per
// display refresh. Each frame reads the current view, uploads it, draws, and
// asks the scheduler for the next frame, so the loop runs until the window is
// torn down.
package render

import (
	"github.com/stewi1014/glmandelbrot/programs"
	"github.com/stewi1014/glmandelbrot/viewport"
)

// Backend is a compiled program bound to a full-screen quad.
type Backend interface {
	LoadUniforms(uniforms programs.Uniforms)
	Draw()
}

// Scheduler calls fn at the next display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}

// SchedulerFunc adapts a function to a Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) RequestFrame(fn func()) { f(fn) }

// ViewSource publishes the view drawn each frame; *viewport.Controller implements it.
type ViewSource interface {
	View() viewport.ViewState
}

type Renderer struct {
	backend   Backend
	scheduler Scheduler
	view      ViewSource

	uniforms programs.Uniforms
	frames   uint64
	started  bool
}

// New returns a Renderer for a width x height framebuffer.
// The resolution is fixed for the life of the renderer.
func New(backend Backend, scheduler Scheduler, view ViewSource, width, height int) *Renderer {
	return &Renderer{
		backend:   backend,
		scheduler: scheduler,
		view:      view,
		uniforms:  programs.NewUniforms(width, height),
	}
}

// Start schedules the first frame. Later calls do nothing.
func (r *Renderer) Start() {
	if r.started {
		return
	}
	r.started = true

	Logger().Debug("starting render loop",
		"width", r.uniforms.Resolution[0],
		"height", r.uniforms.Resolution[1],
	)
	r.scheduler.RequestFrame(r.RenderFrame)
}

// RenderFrame draws one frame with the current view and schedules the next.
func (r *Renderer) RenderFrame() {
	r.uniforms.SetView(r.view.View())
	r.backend.LoadUniforms(r.uniforms)
	r.backend.Draw()
	r.frames++

	r.scheduler.RequestFrame(r.RenderFrame)
}

// Uniforms returns the uniforms of the most recent frame.
func (r *Renderer) Uniforms() programs.Uniforms {
	return r.uniforms
}

// Frames returns the number of frames drawn so far.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

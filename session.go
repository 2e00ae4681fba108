package main

import (
	"log/slog"

	"github.com/stewi1014/glmandelbrot/render"
	"github.com/stewi1014/glmandelbrot/viewport"
)

// session is the single live viewer: one controller fed by the window's
// input and one renderer drawing what it publishes.
type session struct {
	controller *viewport.Controller
	renderer   *render.Renderer
}

func newSession(input viewport.InputSource, keys viewport.KeyMap) *session {
	s := &session{
		controller: viewport.NewController(viewport.DefaultViewState()),
	}

	s.controller.Attach(input, keys)
	s.controller.OnChange(func(v viewport.ViewState) {
		slog.Debug("view changed", "offset", v.Offset, "dilation", v.Dilation)
	})

	return s
}

// start begins drawing once the window has a GL context and a framebuffer size.
func (s *session) start(backend render.Backend, scheduler render.Scheduler, width, height int) {
	if s.renderer != nil {
		return
	}

	s.renderer = render.New(backend, scheduler, s.controller, width, height)
	s.renderer.Start()
}

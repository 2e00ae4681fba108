// Package viewport holds the interactive view of the fractal plane and
// translates pointer and key input into changes of it.
package viewport

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PanSensitivity is the plane distance moved per pixel of drag at dilation 1.
const PanSensitivity = 0.005

// ZoomDirection selects which way a zoom key moves the dilation.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

func (d ZoomDirection) String() string {
	switch d {
	case ZoomIn:
		return "in"
	case ZoomOut:
		return "out"
	}
	return "unknown"
}

// ViewState is the part of the view that is published to the renderer.
//
// Dilation is never zero; it starts at 1 and only ever doubles or halves.
// Repeated halving does eventually underflow float64, at which point pan
// deltas diverge. No bound is applied.
type ViewState struct {
	Offset   mgl64.Vec2
	Dilation float64
}

// DefaultViewState is the view the viewer starts with, centred on the origin.
func DefaultViewState() ViewState {
	return ViewState{
		Dilation: 1,
	}
}

// DragState tracks an in-progress pointer drag.
// LastPointer is only meaningful while Active is set.
type DragState struct {
	Active      bool
	LastPointer mgl64.Vec2
}

// Controller owns a ViewState and DragState and applies input to them.
// It is not safe for concurrent use; all calls are expected on the UI thread.
type Controller struct {
	view ViewState
	drag DragState

	listeners []func(ViewState)
}

func NewController(initial ViewState) *Controller {
	return &Controller{
		view: initial,
	}
}

// View returns a copy of the current view.
func (c *Controller) View() ViewState {
	return c.view
}

// Drag returns a copy of the current drag state.
func (c *Controller) Drag() DragState {
	return c.drag
}

// OnChange registers fn to be called with the new view after every change.
func (c *Controller) OnChange(fn func(ViewState)) {
	c.listeners = append(c.listeners, fn)
}

// DragStart begins a drag at pos. Calling it during a drag moves the capture point.
func (c *Controller) DragStart(pos mgl64.Vec2) {
	c.drag.Active = true
	c.drag.LastPointer = pos
}

// DragMove pans the view by the pointer movement since the last event.
// The movement is scaled down by the dilation so a pixel of drag covers the
// same on-screen distance at every zoom level. Screen y grows downwards, the
// plane's y grows upwards.
func (c *Controller) DragMove(pos mgl64.Vec2) {
	if !c.drag.Active {
		return
	}

	delta := pos.Sub(c.drag.LastPointer).Mul(PanSensitivity / c.view.Dilation)
	c.view.Offset[0] -= delta.X()
	c.view.Offset[1] += delta.Y()
	c.drag.LastPointer = pos

	c.changed()
}

func (c *Controller) DragEnd() {
	c.drag.Active = false
}

// Zoom doubles or halves the dilation.
func (c *Controller) Zoom(dir ZoomDirection) {
	switch dir {
	case ZoomIn:
		c.view.Dilation *= 2
	case ZoomOut:
		c.view.Dilation /= 2
	default:
		return
	}

	c.changed()
}

func (c *Controller) changed() {
	for _, fn := range c.listeners {
		fn(c.view)
	}
}

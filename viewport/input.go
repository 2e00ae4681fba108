package viewport

import (
	"github.com/go-gl/mathgl/mgl64"
)

// InputSource is a window, or anything else, that delivers pointer and key input.
// Pointer positions are in window pixels with y growing downwards.
// Key names are the platform's printable name for the key, e.g. "1".
type InputSource interface {
	OnDragStart(func(pos mgl64.Vec2))
	OnDragMove(func(pos mgl64.Vec2))
	OnDragEnd(func())
	OnKeyPress(func(key string))
}

// KeyMap maps key names to zoom actions.
type KeyMap map[string]ZoomDirection

const (
	DefaultZoomInKey  = "1"
	DefaultZoomOutKey = "2"
)

// DefaultKeyMap zooms in on DefaultZoomInKey and out on DefaultZoomOutKey.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		DefaultZoomInKey:  ZoomIn,
		DefaultZoomOutKey: ZoomOut,
	}
}

// Attach subscribes the controller to src. Keys missing from keys are ignored.
func (c *Controller) Attach(src InputSource, keys KeyMap) {
	src.OnDragStart(c.DragStart)
	src.OnDragMove(c.DragMove)
	src.OnDragEnd(c.DragEnd)
	src.OnKeyPress(func(key string) {
		if dir, ok := keys[key]; ok {
			c.Zoom(dir)
		}
	})
}

// Listeners is an InputSource implementation that backends embed; it fans
// each event out to every subscriber in subscription order.
type Listeners struct {
	dragStart []func(mgl64.Vec2)
	dragMove  []func(mgl64.Vec2)
	dragEnd   []func()
	keyPress  []func(string)
}

var _ InputSource = &Listeners{}

// OnDragStart subscribes fn to pointer presses.
func (l *Listeners) OnDragStart(fn func(pos mgl64.Vec2)) { l.dragStart = append(l.dragStart, fn) }

// OnDragMove subscribes fn to pointer motion.
func (l *Listeners) OnDragMove(fn func(pos mgl64.Vec2)) { l.dragMove = append(l.dragMove, fn) }

// OnDragEnd subscribes fn to pointer releases.
func (l *Listeners) OnDragEnd(fn func()) { l.dragEnd = append(l.dragEnd, fn) }

// OnKeyPress subscribes fn to key presses.
func (l *Listeners) OnKeyPress(fn func(key string)) { l.keyPress = append(l.keyPress, fn) }

// EmitDragStart calls every OnDragStart subscriber with pos.
func (l *Listeners) EmitDragStart(pos mgl64.Vec2) {
	for _, fn := range l.dragStart {
		fn(pos)
	}
}

// EmitDragMove calls every OnDragMove subscriber with pos.
func (l *Listeners) EmitDragMove(pos mgl64.Vec2) {
	for _, fn := range l.dragMove {
		fn(pos)
	}
}

// EmitDragEnd calls every OnDragEnd subscriber.
func (l *Listeners) EmitDragEnd() {
	for _, fn := range l.dragEnd {
		fn()
	}
}

// EmitKeyPress calls every OnKeyPress subscriber with key.
func (l *Listeners) EmitKeyPress(key string) {
	for _, fn := range l.keyPress {
		fn(key)
	}
}

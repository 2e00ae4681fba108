package render

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandelbrot/programs"
	"github.com/stewi1014/glmandelbrot/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls    []string
	uniforms []programs.Uniforms
}

func (b *fakeBackend) LoadUniforms(u programs.Uniforms) {
	b.calls = append(b.calls, "uniforms")
	b.uniforms = append(b.uniforms, u)
}

func (b *fakeBackend) Draw() {
	b.calls = append(b.calls, "draw")
}

// stepScheduler holds the pending frame until the test steps it.
type stepScheduler struct {
	pending  func()
	requests int
}

func (s *stepScheduler) RequestFrame(fn func()) {
	s.pending = fn
	s.requests++
}

func (s *stepScheduler) step(t *testing.T) {
	t.Helper()
	require.NotNil(t, s.pending, "no frame scheduled")
	fn := s.pending
	s.pending = nil
	fn()
}

func newTestRenderer(width, height int) (*Renderer, *fakeBackend, *stepScheduler, *viewport.Controller) {
	backend := &fakeBackend{}
	scheduler := &stepScheduler{}
	controller := viewport.NewController(viewport.DefaultViewState())
	return New(backend, scheduler, controller, width, height), backend, scheduler, controller
}

func TestStartSchedulesWithoutDrawing(t *testing.T) {
	r, backend, scheduler, _ := newTestRenderer(800, 600)

	r.Start()
	r.Start()

	assert.Equal(t, 1, scheduler.requests)
	assert.Empty(t, backend.calls)
	assert.Zero(t, r.Frames())
}

func TestRenderFrameReschedules(t *testing.T) {
	r, backend, scheduler, _ := newTestRenderer(800, 600)
	r.Start()

	for i := 0; i < 3; i++ {
		scheduler.step(t)
	}

	assert.Equal(t, uint64(3), r.Frames())
	assert.Equal(t, 4, scheduler.requests)
	assert.NotNil(t, scheduler.pending)
	assert.Equal(t, []string{"uniforms", "draw", "uniforms", "draw", "uniforms", "draw"}, backend.calls)
}

func TestRenderFrameReadsLatestView(t *testing.T) {
	r, backend, scheduler, controller := newTestRenderer(800, 400)
	r.Start()
	scheduler.step(t)

	require.Len(t, backend.uniforms, 1)
	first := backend.uniforms[0]
	assert.Equal(t, mgl32.Vec2{800, 400}, first.Resolution)
	assert.Equal(t, float32(2), first.Aspect)
	assert.Equal(t, float32(1), first.Dilation)
	assert.Equal(t, programs.Camera(), first.Camera)

	// Input between frames is fully applied before the next frame reads it.
	controller.Zoom(viewport.ZoomIn)
	controller.DragStart(mgl64.Vec2{0, 0})
	controller.DragMove(mgl64.Vec2{0, 100})
	scheduler.step(t)

	require.Len(t, backend.uniforms, 2)
	second := backend.uniforms[1]
	assert.Equal(t, float32(2), second.Dilation)
	assert.InDelta(t, 100*viewport.PanSensitivity/2, second.Offset.Y(), 1e-7)
	assert.Equal(t, first.Resolution, second.Resolution)
	assert.Equal(t, second, r.Uniforms())
}

func TestSchedulerFunc(t *testing.T) {
	var got func()
	s := SchedulerFunc(func(fn func()) { got = fn })

	called := false
	s.RequestFrame(func() { called = true })
	require.NotNil(t, got)
	got()
	assert.True(t, called)
}

func TestLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	r, _, _, _ := newTestRenderer(10, 10)
	r.Start()
	assert.Contains(t, buf.String(), "starting render loop")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

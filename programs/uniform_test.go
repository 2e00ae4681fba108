package programs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandelbrot/viewport"
	"github.com/stretchr/testify/assert"
)

func TestNewUniforms(t *testing.T) {
	u := NewUniforms(800, 400)

	assert.Equal(t, mgl32.Vec2{800, 400}, u.Resolution)
	assert.Equal(t, float32(2), u.Aspect)
	assert.Equal(t, mgl32.Vec2{}, u.Offset)
	assert.Equal(t, float32(1), u.Dilation)
	assert.Equal(t, Camera(), u.Camera)
}

func TestSetViewKeepsDisplay(t *testing.T) {
	u := NewUniforms(800, 400)
	u.SetView(viewport.ViewState{Offset: mgl64.Vec2{-0.5, 0.25}, Dilation: 4})

	assert.Equal(t, mgl32.Vec2{-0.5, 0.25}, u.Offset)
	assert.Equal(t, float32(4), u.Dilation)
	assert.Equal(t, mgl32.Vec2{800, 400}, u.Resolution)
	assert.Equal(t, float32(2), u.Aspect)
}

func TestCameraMapsQuadToNDC(t *testing.T) {
	cam := Camera()
	for _, corner := range []mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		p := cam.Mul4x1(mgl32.Vec4{corner[0], corner[1], 0, 1})
		assert.InDelta(t, corner[0], p[0], 1e-6)
		assert.InDelta(t, corner[1], p[1], 1e-6)
	}
}

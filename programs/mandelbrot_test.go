package programs

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandelbrot/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, 1.0, Escape(0))
	assert.Equal(t, 1.0, Escape(complex(-1, 0)))
	assert.Equal(t, 1.0/200, Escape(3))
	assert.Equal(t, 0.005, Escape(3))

	// |c| > 2 escapes straight after the first step.
	assert.Equal(t, 1.0/200, Escape(complex(0, 2.5)))

	// c = 2 reaches z = 6 on the third step; |z|^2 = 36 is seen on iteration 2.
	assert.Equal(t, 2.0/200, Escape(2))

	// c = 1: 0, 1, 2, 5; |z|^2 = 25 seen on iteration 3.
	assert.Equal(t, 3.0/200, Escape(1))
}

func TestEscapeRange(t *testing.T) {
	for x := -2.5; x <= 1.5; x += 0.1 {
		for y := -1.5; y <= 1.5; y += 0.1 {
			a := Escape(complex(x, y))
			assert.GreaterOrEqual(t, a, 0.0)
			assert.LessOrEqual(t, a, 1.0)
		}
	}
}

func TestPlaneCoordCentre(t *testing.T) {
	for _, res := range []mgl64.Vec2{{800, 600}, {600, 800}, {1920, 1080}, {333, 777}} {
		aspect := res[0] / res[1]
		c := PlaneCoord(res.Mul(0.5), res, aspect, mgl64.Vec2{}, 1)
		assert.Equal(t, complex(0, 0), c, "resolution %v", res)
	}
}

func TestPlaneCoordCorners(t *testing.T) {
	res := mgl64.Vec2{400, 200}
	aspect := 2.0

	assert.Equal(t, complex(-4, -2), PlaneCoord(mgl64.Vec2{0, 0}, res, aspect, mgl64.Vec2{}, 1))
	assert.Equal(t, complex(4, 2), PlaneCoord(res, res, aspect, mgl64.Vec2{}, 1))
}

func TestPlaneCoordView(t *testing.T) {
	res := mgl64.Vec2{200, 200}
	offset := mgl64.Vec2{-0.75, 0.1}

	c := PlaneCoord(res.Mul(0.5), res, 1, offset, 8)
	assert.Equal(t, complex(-0.75, 0.1), c)

	c = PlaneCoord(mgl64.Vec2{200, 100}, res, 1, offset, 8)
	assert.InDelta(t, 2.0/8-0.75, real(c), 1e-15)
	assert.InDelta(t, 0.1, imag(c), 1e-15)
}

func TestColour(t *testing.T) {
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, Colour(1))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, Colour(0))

	c := Colour(0.5)
	assert.InDelta(t, 0.03125, c[0], 1e-7)
	assert.InDelta(t, 0.03125, c[1], 1e-7)
	assert.InDelta(t, 0.5, c[2], 1e-7)
	assert.Equal(t, float32(1), c[3])
}

func TestMandelbrotProgram(t *testing.T) {
	p, ok := GetProgramByName("mandelbrot")
	require.True(t, ok)
	require.NotNil(t, p.GetPixel)

	assert.Contains(t, p.VertexShader, "uniform mat4 camera")
	for _, name := range []string{"res", "aspect", "offset", "dilation"} {
		assert.True(t, strings.Contains(p.FragmentShader, " "+name+";"), "fragment shader declares %v", name)
	}

	u := NewUniforms(640, 480)

	centre, err := p.Pixel(u, mgl64.Vec2{320, 240})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, centre)

	// The left edge of a 4:3 frame is at x = -8/3, outside the set.
	edge, err := p.Pixel(u, mgl64.Vec2{0, 240})
	require.NoError(t, err)
	assert.Less(t, edge[2], float32(1))
	assert.Equal(t, float32(1), edge[3])
}

func TestPixelFollowsView(t *testing.T) {
	p, ok := GetProgramByName("mandelbrot")
	require.True(t, ok)

	u := NewUniforms(100, 100)
	u.SetView(viewport.ViewState{Offset: mgl64.Vec2{3, 0}, Dilation: 1})

	got, err := p.Pixel(u, mgl64.Vec2{50, 50})
	require.NoError(t, err)
	assert.Equal(t, Colour(Escape(3)), got)
}

func TestPixelWithoutCPUImplementation(t *testing.T) {
	p := Program{Name: "gpu only"}
	_, err := p.Pixel(Uniforms{}, mgl64.Vec2{})
	assert.ErrorIs(t, err, ErrNoCPUImplementation)
}

func TestGetProgramByNameMissing(t *testing.T) {
	_, ok := GetProgramByName("does not exist")
	assert.False(t, ok)
}

package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

const (
	// MaxIterations caps the escape-time loop; points still bounded after
	// this many steps are treated as inside the set.
	MaxIterations = 200

	// EscapeRadiusSq is the squared magnitude past which z has escaped.
	EscapeRadiusSq = 4.0
)

func init() {
	NewProgram(Program{
		Name:           "mandelbrot",
		VertexShader:   defaultVertexShader,
		FragmentShader: mandelbrotFragment,
		GetPixel: func(uniforms Uniforms, fragCoord mgl64.Vec2) mgl32.Vec4 {
			c := PlaneCoord(
				fragCoord,
				mgl64.Vec2{float64(uniforms.Resolution[0]), float64(uniforms.Resolution[1])},
				float64(uniforms.Aspect),
				mgl64.Vec2{float64(uniforms.Offset[0]), float64(uniforms.Offset[1])},
				float64(uniforms.Dilation),
			)
			return Colour(Escape(c))
		},
	})
}

// PlaneCoord maps a framebuffer pixel to the point of the complex plane it shows.
// Before panning and zooming the plane spans [-2*aspect, 2*aspect] x [-2, 2]
// with the origin at the centre of the framebuffer.
func PlaneCoord(pixel, resolution mgl64.Vec2, aspect float64, offset mgl64.Vec2, dilation float64) complex128 {
	scale := mgl64.Vec2{aspect, 1}
	uv := mgl64.Vec2{
		4*scale[0]*(pixel[0]/resolution[0]) - 2*scale[0],
		4*scale[1]*(pixel[1]/resolution[1]) - 2*scale[1],
	}
	return complex(uv[0]/dilation+offset[0], uv[1]/dilation+offset[1])
}

// Escape returns how quickly z = z*z + c leaves the escape radius, starting from z = 0.
// The result is i/MaxIterations for the iteration i at which |z|^2, measured
// before that iteration's step, exceeded the radius, or 1 if it never did.
func Escape(c complex128) float64 {
	alpha := 1.0
	x, y := 0.0, 0.0

	for i := 0; i < MaxIterations; i++ {
		xSq, ySq := x*x, y*y
		x, y = xSq-ySq+real(c), 2*x*y+imag(c)

		if xSq+ySq > EscapeRadiusSq {
			alpha = float64(i) / MaxIterations
			break
		}
	}

	return alpha
}

// Colour turns an escape speed into an opaque colour. Red and green fall off
// with the fifth power, blue linearly, giving a blue palette outside the set
// and white inside it.
func Colour(alpha float64) mgl32.Vec4 {
	rg := alpha * alpha * alpha * alpha * alpha
	return mgl32.Vec4{float32(rg), float32(rg), float32(alpha), 1}
}

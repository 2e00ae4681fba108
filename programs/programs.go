package programs

import (
	_ "embed"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrNoCPUImplementation = errors.New("fractal does not have a CPU implementation")

//go:embed shaders/default.vert
var defaultVertexShader string

func GetProgram(i int) Program {
	return programs[i]
}

// GetProgramByName returns the first registered program called name.
func GetProgramByName(name string) (Program, bool) {
	for _, p := range programs {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

func NewProgram(p Program) error {
	programs = append(programs, p)
	return nil
}

var programs []Program

// PixelFunc computes the colour of the fragment at fragCoord, in framebuffer
// pixels with the origin at the bottom left, matching gl_FragCoord.
type PixelFunc func(uniforms Uniforms, fragCoord mgl64.Vec2) mgl32.Vec4

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}

// Pixel runs the CPU implementation of the program.
func (p *Program) Pixel(uniforms Uniforms, fragCoord mgl64.Vec2) (mgl32.Vec4, error) {
	if p.GetPixel == nil {
		return mgl32.Vec4{}, ErrNoCPUImplementation
	}
	return p.GetPixel(uniforms, fragCoord), nil
}

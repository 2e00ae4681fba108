package programs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glmandelbrot/viewport"
)

// Uniforms is the per-frame input of a program.
// The uniform tag names the GLSL uniform each field is uploaded to.
type Uniforms struct {
	Camera     mgl32.Mat4 `uniform:"camera"`
	Resolution mgl32.Vec2 `uniform:"res"`
	Aspect     float32    `uniform:"aspect"`
	Offset     mgl32.Vec2 `uniform:"offset"`
	Dilation   float32    `uniform:"dilation"`
}

// Camera is the orthographic projection the full-screen quad is drawn with.
func Camera() mgl32.Mat4 {
	return mgl32.Ortho(-1, 1, -1, 1, -1, 1)
}

// NewUniforms returns uniforms for a width x height framebuffer showing the default view.
func NewUniforms(width, height int) Uniforms {
	u := Uniforms{
		Camera:     Camera(),
		Resolution: mgl32.Vec2{float32(width), float32(height)},
		Aspect:     float32(width) / float32(height),
	}
	u.SetView(viewport.DefaultViewState())
	return u
}

// SetView copies the view into the uniforms, leaving resolution and camera alone.
func (u *Uniforms) SetView(view viewport.ViewState) {
	u.Offset = mgl32.Vec2{float32(view.Offset.X()), float32(view.Offset.Y())}
	u.Dilation = float32(view.Dilation)
}

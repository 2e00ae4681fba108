package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	for stem, want := range map[string]string{
		"posts/interactive_mandelbrot": "Interactive Mandelbrot",
		"/posts/mandelbrot":            "Mandelbrot",
		"mandelbrot":                   "Mandelbrot",
		"posts/json_tokenizer":         "Json Tokenizer",
		"posts/gpu_fractals_in_GLSL":   "Gpu Fractals In GLSL",
		"posts/already_Titled":         "Already Titled",
		"posts/trailing_":              "Trailing ",
		"posts/straße_ßig":             "Straße SSig",
		"posts/über_shader":            "Über Shader",
		"":                             "",
		"posts/foo/":                   "",
	} {
		assert.Equal(t, want, Title(stem), "stem %q", stem)
	}
}

func TestNewFrontMatter(t *testing.T) {
	fm := NewFrontMatter("posts/interactive_mandelbrot")

	assert.Equal(t, FrontMatter{
		Title:  "Interactive Mandelbrot",
		Layout: "layouts/post.njk",
		Tags:   []string{"posts"},
	}, fm)
}

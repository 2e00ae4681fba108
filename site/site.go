// Package site derives the page metadata of the post the viewer is published in.
package site

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Layout = "layouts/post.njk"
	Tag    = "posts"
)

// FrontMatter is the metadata applied to every post.
type FrontMatter struct {
	Title  string   `toml:"title"`
	Layout string   `toml:"layout"`
	Tags   []string `toml:"tags"`
}

// Title turns a content path such as "posts/interactive_mandelbrot" into
// "Interactive Mandelbrot". Only the first character of each word is changed.
// The title comes from the text after the last slash, so a trailing slash gives "".
func Title(filePathStem string) string {
	name := filePathStem[strings.LastIndex(filePathStem, "/")+1:]
	words := strings.Split(name, "_")
	upper := cases.Upper(language.Und)

	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		if size == 0 {
			continue
		}
		words[i] = upper.String(string(r)) + word[size:]
	}

	return strings.Join(words, " ")
}

func NewFrontMatter(filePathStem string) FrontMatter {
	return FrontMatter{
		Title:  Title(filePathStem),
		Layout: Layout,
		Tags:   []string{Tag},
	}
}

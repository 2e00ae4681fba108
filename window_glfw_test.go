package main

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestIsKeyDown(t *testing.T) {
	assert.True(t, isKeyDown(glfw.Press))
	assert.True(t, isKeyDown(glfw.Repeat))
	assert.False(t, isKeyDown(glfw.Release))
}

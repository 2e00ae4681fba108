// Package inspect carries view updates from the render window to the info
// window over a gob-encoded in-process connection, and turns them into the
// read-out the info window shows.
package inspect

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandelbrot/programs"
	"github.com/stewi1014/glmandelbrot/viewport"
)

func init() {
	gob.Register(&Message{})
}

// Message is a snapshot of the render window.
// Program names the registered program being drawn.
// Pointer is in framebuffer pixels with the origin at the bottom left and is
// only set when HasPointer is.
type Message struct {
	Program    string
	View       viewport.ViewState
	Uniforms   programs.Uniforms
	Pointer    mgl64.Vec2
	HasPointer bool
}

// Sender encodes messages onto a connection from its own goroutine.
// Only the newest unsent message is kept, so Send never blocks the caller.
type Sender struct {
	messages chan interface{}
}

func NewSender(ctx context.Context, conn net.Conn) *Sender {
	s := &Sender{
		messages: make(chan interface{}, 1),
	}
	go s.handleSend(ctx, conn)
	return s
}

func (s *Sender) Send(msg Message) {
	select {
	case s.messages <- msg:
		return
	default:
	}

	select {
	case <-s.messages:
	default:
	}
	s.messages <- msg
}

func (s *Sender) handleSend(ctx context.Context, conn net.Conn) {
	enc := gob.NewEncoder(conn)
	defer conn.Close()

	for {
		select {
		case msg := <-s.messages:
			err := enc.Encode(&msg)
			if errors.Is(err, io.ErrClosedPipe) {
				slog.Debug("info window closed, no longer sending view updates")
				return
			}
			if err != nil {
				slog.Warn("sending view update", "err", err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Receive decodes messages from conn, calling fn with each, until the
// connection fails. A closed connection returns nil.
func Receive(conn net.Conn, fn func(Message)) error {
	dec := gob.NewDecoder(conn)
	defer conn.Close()

	for {
		var v interface{}
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decoding view update: %w", err)
		}

		switch msg := v.(type) {
		case *Message:
			fn(*msg)
		default:
			slog.Warn("unknown message received", "type", fmt.Sprintf("%T", v))
		}
	}
}

// Reading is the info window's read-out for one message.
type Reading struct {
	Offset   mgl64.Vec2
	Dilation float64

	HasPointer bool
	Point      complex128
	Escape     float64

	// HasColour is false when the program has no CPU implementation.
	HasColour bool
	Colour    mgl32.Vec4
}

// Read evaluates the fractal under the pointer on the CPU, colouring it
// with the program named in msg.
func Read(msg Message) Reading {
	r := Reading{
		Offset:     msg.View.Offset,
		Dilation:   msg.View.Dilation,
		HasPointer: msg.HasPointer,
	}
	if !msg.HasPointer {
		return r
	}

	res := msg.Uniforms.Resolution
	r.Point = programs.PlaneCoord(
		msg.Pointer,
		mgl64.Vec2{float64(res[0]), float64(res[1])},
		float64(msg.Uniforms.Aspect),
		msg.View.Offset,
		msg.View.Dilation,
	)
	r.Escape = programs.Escape(r.Point)

	program, ok := programs.GetProgramByName(msg.Program)
	if !ok {
		slog.Debug("unknown program", "program", msg.Program)
		return r
	}

	colour, err := program.Pixel(msg.Uniforms, msg.Pointer)
	if err != nil {
		slog.Debug("no pointer colour", "program", msg.Program, "err", err)
		return r
	}
	r.Colour, r.HasColour = colour, true
	return r
}

// Lines formats the reading one field per line.
func (r Reading) Lines() []string {
	lines := []string{
		fmt.Sprintf("Offset: %.6g, %.6g", r.Offset.X(), r.Offset.Y()),
		fmt.Sprintf("Dilation: %g", r.Dilation),
	}

	if !r.HasPointer {
		return append(lines, "Pointer: -", "Escape: -", "Colour: -")
	}

	lines = append(lines,
		fmt.Sprintf("Pointer: %.6g %+.6gi", real(r.Point), imag(r.Point)),
		fmt.Sprintf("Escape: %.3f", r.Escape),
	)
	if !r.HasColour {
		return append(lines, "Colour: -")
	}
	return append(lines, fmt.Sprintf("Colour: %.3f %.3f %.3f", r.Colour[0], r.Colour[1], r.Colour[2]))
}

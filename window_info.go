package main

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandelbrot/inspect"
)

// NewInfoWindow shows the view read-out sent by the render window over listener.
func NewInfoWindow(
	app *gtk.Application,
	listener net.Listener,
	quit func(error),
) *InfoWindow {
	var err error
	w := &InfoWindow{
		quit: quit,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetTitle("GLMandelbrot View")
	w.SetDefaultSize(280, 140)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 4)
	if err != nil {
		quit(fmt.Errorf("gtk.BoxNew: %w", err))
		return nil
	}
	box.SetMarginStart(8)
	box.SetMarginEnd(8)
	box.SetMarginTop(8)
	box.SetMarginBottom(8)

	for _, line := range (inspect.Reading{Dilation: 1}).Lines() {
		l, err := gtk.LabelNew(line)
		if err != nil {
			quit(fmt.Errorf("gtk.LabelNew: %w", err))
			return nil
		}
		l.SetXAlign(0)
		l.SetSelectable(true)
		box.Add(l)
		w.labels = append(w.labels, l)
	}

	w.Add(box)
	w.ShowAll()

	go w.handleReceive(listener)

	return w
}

type InfoWindow struct {
	*gtk.ApplicationWindow
	labels []*gtk.Label
	quit   func(error)
}

func (w *InfoWindow) handleReceive(listener net.Listener) {
	defer CatchPanicToContext(w.quit)

	conn, err := listener.Accept()
	if err != nil {
		slog.Debug("info window listener closed", "err", err)
		return
	}

	err = inspect.Receive(conn, func(msg inspect.Message) {
		lines := inspect.Read(msg).Lines()
		glib.IdleAdd(func() {
			w.show(lines)
		})
	})
	if err != nil {
		slog.Warn("info window stopped receiving", "err", err)
	}
}

func (w *InfoWindow) show(lines []string) {
	for i, l := range w.labels {
		if i < len(lines) {
			l.SetText(lines[i])
		}
	}
}

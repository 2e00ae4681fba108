package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandelbrot/config"
	"github.com/stewi1014/glmandelbrot/inspect"
)

func NewApplication() (*Application, error) {
	app, err := gtk.ApplicationNew("com.github.stewi1014.glmandelbrot", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	a := &Application{
		Application: app,
	}

	return a, nil
}

type Application struct {
	*gtk.Application
}

// runGTK shows the render and info windows and blocks until either is closed
// or ctx is done. It must be called from the locked main thread.
func runGTK(ctx context.Context, cfg config.Config) error {
	gtk.Init(nil)

	app, err := NewApplication()
	if err != nil {
		return err
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		client, listener := inspect.NewPipeListener()

		renderWindow := NewRenderWindow(app.Application, cfg, client, appContext, appQuit)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})

		infoWindow := NewInfoWindow(app.Application, listener, appQuit)
		if infoWindow == nil {
			return
		}
		infoWindow.SetTransientFor(renderWindow.ApplicationWindow)
		infoWindow.Connect("destroy", func() {
			listener.Close()
		})
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()

	slog.Debug("running gtk application")
	app.Run(nil)
	appQuit(nil)

	err = context.Cause(appContext)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

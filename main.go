package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/stewi1014/glmandelbrot/config"
	"github.com/stewi1014/glmandelbrot/render"
	"github.com/stewi1014/glmandelbrot/site"
)

func init() {
	// GTK, GLFW and the GL context all belong to the main thread.
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("glmandelbrot failed", "err", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	var configPath string

	cmd := &cobra.Command{
		Use:           "glmandelbrot",
		Short:         "Explore the Mandelbrot set on the GPU",
		Long:          "Drag to pan, press the zoom keys (1 and 2 by default) to zoom in and out.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg := config.Default()
			if configPath != "" {
				err := config.LoadFile(configPath, &fileCfg)
				if err != nil {
					return err
				}
			}
			applyFlags(cmd, &fileCfg, cfg)

			err := fileCfg.Validate()
			if err != nil {
				return err
			}

			setupLogger(fileCfg.Debug)
			return run(cmd.Context(), fileCfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "TOML config file")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "window backend, gtk or glfw")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels, 0 for 60% of the monitor")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels, 0 for 60% of the monitor")
	flags.StringVar(&cfg.Page, "page", cfg.Page, "content path the window title is derived from")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging and OpenGL debug output")

	cmd.AddCommand(newFrontMatterCommand())
	return cmd
}

// applyFlags copies the flags given on the command line over dst.
func applyFlags(cmd *cobra.Command, dst *config.Config, flagCfg config.Config) {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		dst.Backend = flagCfg.Backend
	}
	if flags.Changed("width") {
		dst.Width = flagCfg.Width
	}
	if flags.Changed("height") {
		dst.Height = flagCfg.Height
	}
	if flags.Changed("page") {
		dst.Page = flagCfg.Page
	}
	if flags.Changed("debug") {
		dst.Debug = flagCfg.Debug
	}
}

func newFrontMatterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frontmatter <path>",
		Short: "Print the front matter of the post at path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(site.NewFrontMatter(args[0]))
		},
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	}))
	slog.SetDefault(logger)
	render.SetLogger(logger.With("component", "render"))
}

func run(ctx context.Context, cfg config.Config) error {
	slog.Info("starting", "backend", cfg.Backend, "page", cfg.Page)

	switch cfg.Backend {
	case config.BackendGTK:
		return runGTK(ctx, cfg)
	case config.BackendGLFW:
		return runGLFW(ctx, cfg)
	}
	return fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
}

package app

import (
	"io"
	"log/slog"

	"github.com/Marohn-Group/mrfmsim-yaml/builtin"
	"github.com/Marohn-Group/mrfmsim-yaml/codec"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Path      string
	Check     bool
	Write     bool
	LogFormat string
	LogLevel  string
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *symbols.Registry
	loader   *codec.Loader
	dumper   *codec.Dumper
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and symbol registry.
// Additional modules may be registered on top of the builtin table.
func NewApp(outW io.Writer, cfg *Config, register ...func(*symbols.Registry)) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := symbols.NewRegistry()
	builtin.Register(reg)
	for _, fn := range register {
		fn(reg)
	}
	logger.Debug("Symbol registry populated.", "modules", reg.Modules())

	loader, dumper := codec.New(reg)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader,
		dumper:   dumper,
	}
}

// Registry returns the application's symbol registry. This is primarily for
// testing.
func (a *App) Registry() *symbols.Registry {
	return a.registry
}

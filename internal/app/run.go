package app

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Marohn-Group/mrfmsim-yaml/internal/ctxlog"
	"github.com/Marohn-Group/mrfmsim-yaml/internal/fsutil"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindConfigFiles(cfg.Path, ".yaml", ".yml")
	if err != nil {
		return fmt.Errorf("failed to find configuration files in %s: %w", cfg.Path, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No configuration files found.", "path", cfg.Path)
		return nil
	}
	a.logger.Debug("Configuration files discovered.", "count", len(files))

	var dirty []string
	for _, file := range files {
		canonical, changed, err := a.processFile(ctx, file, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if changed {
			dirty = append(dirty, file)
		}
		if !cfg.Check && !cfg.Write {
			if _, err := a.outW.Write(canonical); err != nil {
				return err
			}
		}
	}

	if cfg.Check && len(dirty) > 0 {
		for _, file := range dirty {
			fmt.Fprintf(a.outW, "not canonical: %s\n", file)
		}
		return fmt.Errorf("%d file(s) differ from canonical form", len(dirty))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// processFile loads one file, re-emits it canonically, and optionally writes
// the result back. It reports whether the canonical form differs from the
// file's current content.
func (a *App) processFile(ctx context.Context, file string, cfg *Config) ([]byte, bool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Processing configuration file.", "file", file)

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, false, err
	}
	entity, err := a.loader.LoadBytes(data)
	if err != nil {
		return nil, false, err
	}
	canonical, err := a.dumper.Dump(entity)
	if err != nil {
		return nil, false, err
	}

	changed := !bytes.Equal(data, canonical)
	if cfg.Write && changed {
		if err := os.WriteFile(file, canonical, 0o644); err != nil {
			return nil, false, err
		}
		logger.Info("Rewrote file in canonical form.", "file", file)
	}
	return canonical, changed, nil
}

package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Marohn-Group/mrfmsim-yaml/internal/app"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

const canonical = "!import operator.add\n"
const nonCanonical = "!import   operator.add\n"

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestRun_PrintsCanonical(t *testing.T) {
	t.Parallel()
	file := writeConfig(t, "config.yaml", nonCanonical)

	var out bytes.Buffer
	cfg := &app.Config{Path: file, LogLevel: "error"}
	a := app.NewApp(&out, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))
	require.Equal(t, canonical, out.String())
}

func TestRun_CheckReportsDirtyFiles(t *testing.T) {
	t.Parallel()
	file := writeConfig(t, "config.yaml", nonCanonical)

	var out bytes.Buffer
	cfg := &app.Config{Path: file, Check: true, LogLevel: "error"}
	a := app.NewApp(&out, cfg)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 file(s) differ")
	require.Contains(t, out.String(), "not canonical: "+file)
}

func TestRun_CheckPassesOnCanonical(t *testing.T) {
	t.Parallel()
	file := writeConfig(t, "config.yaml", canonical)

	var out bytes.Buffer
	cfg := &app.Config{Path: file, Check: true, LogLevel: "error"}
	a := app.NewApp(&out, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))
	require.Empty(t, out.String())
}

func TestRun_WriteRewritesFile(t *testing.T) {
	t.Parallel()
	file := writeConfig(t, "config.yaml", nonCanonical)

	var out bytes.Buffer
	cfg := &app.Config{Path: file, Write: true, LogLevel: "error"}
	a := app.NewApp(&out, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, canonical, string(data))
}

func TestRun_Directory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(canonical), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte(canonical), 0o644))

	var out bytes.Buffer
	cfg := &app.Config{Path: dir, LogLevel: "error"}
	a := app.NewApp(&out, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))
	require.Equal(t, canonical+canonical, out.String())
}

func TestRun_BadConfigNamesFile(t *testing.T) {
	t.Parallel()
	file := writeConfig(t, "config.yaml", "!import module.addition\n")

	var out bytes.Buffer
	cfg := &app.Config{Path: file, LogLevel: "error"}
	a := app.NewApp(&out, cfg)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), file)
	require.Contains(t, err.Error(), `no module named "module.addition"`)
}

func TestNewApp_ExtraModules(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	cfg := &app.Config{LogLevel: "error"}
	a := app.NewApp(&out, cfg, func(reg *symbols.Registry) {
		_ = reg.Register("extras.identity", func(x float64) float64 { return x })
	})

	_, err := a.Registry().Resolve("extras.identity")
	require.NoError(t, err)
}

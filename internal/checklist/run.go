// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package checklist

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/pdiddy/nbchecklist/internal/notebook"
	"github.com/pdiddy/nbchecklist/pkg/types"
)

// ResolvePath joins a relative notebook path onto dir. Absolute paths are
// returned cleaned. An empty name means types.DefaultNotebook.
func ResolvePath(dir, name string) string {
	if name == "" {
		name = types.DefaultNotebook
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}

// ResolveFromWorkingDir resolves name against the process working directory.
func ResolveFromWorkingDir(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return ResolvePath(wd, name), nil
}

// Build loads the notebook at cfg.Notebook and returns its filtered
// checklist without writing anything.
func Build(ctx context.Context, cfg types.ChecklistConfig) (types.Report, error) {
	if err := ctx.Err(); err != nil {
		return types.Report{}, err
	}

	nb, err := notebook.Load(cfg.Notebook)
	if err != nil {
		return types.Report{}, err
	}

	entries, err := Extract(nb)
	if err != nil {
		return types.Report{}, fmt.Errorf("%s: %w", cfg.Notebook, err)
	}

	entries, err = Filter(entries, cfg.Exclude)
	if err != nil {
		return types.Report{}, err
	}

	return types.Report{Notebook: cfg.Notebook, Functions: entries}, nil
}

// Run builds the checklist for cfg.Notebook and renders it to w. Nothing is
// written when loading or extraction fails.
func Run(ctx context.Context, cfg types.ChecklistConfig, w io.Writer) (types.Report, error) {
	cfg = cfg.WithDefaults()

	report, err := Build(ctx, cfg)
	if err != nil {
		return types.Report{}, err
	}
	log.Debugf("%s: %d functions", report.Notebook, len(report.Functions))

	if err := Render(w, cfg.Format, report); err != nil {
		return report, err
	}
	return report, nil
}

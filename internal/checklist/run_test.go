// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package checklist

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nbchecklist/internal/notebook"
	"github.com/pdiddy/nbchecklist/pkg/types"
)

// scenarioNotebook holds a header comment cell, two definitions, and a
// markdown cell between them.
const scenarioNotebook = `{
  "nbformat": 4,
  "nbformat_minor": 5,
  "metadata": {},
  "cells": [
    {"cell_type": "code", "source": ["# header"], "outputs": [], "execution_count": null, "metadata": {}},
    {"cell_type": "code", "source": ["def a(x):\n", "  return x"], "outputs": [], "execution_count": 1, "metadata": {}},
    {"cell_type": "markdown", "source": "some text", "metadata": {}},
    {"cell_type": "code", "source": "def b():\n  pass", "outputs": [], "execution_count": 2, "metadata": {}}
  ]
}`

func writeNotebook(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunText(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), types.DefaultNotebook, scenarioNotebook)

	var out bytes.Buffer
	report, err := Run(context.Background(), types.ChecklistConfig{Notebook: path}, &out)
	require.NoError(t, err)

	want := "Functions implemented in the notebook:\n\n[x] a\n[x] b\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"a", "b"}, report.Names())
	assert.Equal(t, path, report.Notebook)
}

func TestRunNoFunctions(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), "empty.ipynb",
		`{"cells": [{"cell_type": "markdown", "source": "def x(): pass"}, {"cell_type": "code", "source": "# comment"}]}`)

	var out bytes.Buffer
	_, err := Run(context.Background(), types.ChecklistConfig{Notebook: path}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Functions implemented in the notebook:\n\n", out.String())
}

func TestRunDuplicates(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), "dup.ipynb",
		`{"cells": [{"cell_type": "code", "source": "def foo():\n  pass"}, {"cell_type": "code", "source": "def foo():\n  return 2"}]}`)

	var out bytes.Buffer
	_, err := Run(context.Background(), types.ChecklistConfig{Notebook: path}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Functions implemented in the notebook:\n\n[x] foo\n[x] foo\n", out.String())
}

func TestRunErrorsWriteNothing(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "missing notebook",
			path:    filepath.Join(dir, "missing.ipynb"),
			wantErr: notebook.ErrNotFound,
		},
		{
			name:    "invalid notebook",
			path:    writeNotebook(t, dir, "bad.ipynb", "not json"),
			wantErr: notebook.ErrParse,
		},
		{
			name: "malformed definition",
			path: writeNotebook(t, dir, "malformed.ipynb",
				`{"cells": [{"cell_type": "code", "source": "def a():\n  pass"}, {"cell_type": "code", "source": "def"}]}`),
			wantErr: ErrMalformedDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Run(context.Background(), types.ChecklistConfig{Notebook: tt.path}, &out)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out.String())
		})
	}
}

func TestRunCanceled(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), "nb.ipynb", scenarioNotebook)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Run(ctx, types.ChecklistConfig{Notebook: path}, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestRunExclude(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), "nb.ipynb", scenarioNotebook)

	var out bytes.Buffer
	_, err := Run(context.Background(), types.ChecklistConfig{Notebook: path, Exclude: []string{"a"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Functions implemented in the notebook:\n\n[x] b\n", out.String())
}

func TestRunJSON(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), "nb.ipynb", scenarioNotebook)

	var out bytes.Buffer
	_, err := Run(context.Background(), types.ChecklistConfig{Notebook: path, Format: types.OutputJSON}, &out)
	require.NoError(t, err)

	var got types.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, path, got.Notebook)
	assert.Equal(t, []types.FunctionEntry{{Name: "a", Cell: 1}, {Name: "b", Cell: 3}}, got.Functions)
}

func TestRenderJSONEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Render(&out, types.OutputJSON, types.Report{Notebook: "x.ipynb"}))
	assert.Contains(t, out.String(), `"functions": []`)
}

func TestRunYAML(t *testing.T) {
	path := writeNotebook(t, t.TempDir(), "nb.ipynb", scenarioNotebook)

	var out bytes.Buffer
	_, err := Run(context.Background(), types.ChecklistConfig{Notebook: path, Format: types.OutputYAML}, &out)
	require.NoError(t, err)

	var got types.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"a", "b"}, got.Names())
}

func TestRenderUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	err := Render(&out, "xml", types.Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Empty(t, out.String())
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		in   string
		want string
	}{
		{name: "default name", dir: "/work", in: "", want: filepath.Join("/work", types.DefaultNotebook)},
		{name: "relative", dir: "/work", in: "nb/a.ipynb", want: filepath.Join("/work", "nb", "a.ipynb")},
		{name: "absolute", dir: "/work", in: "/data/../data/b.ipynb", want: "/data/b.ipynb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.dir, tt.in))
		})
	}
}

func TestResolveFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	got, err := ResolveFromWorkingDir("")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, types.DefaultNotebook), got)
}

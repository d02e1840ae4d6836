// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook reads Jupyter notebook documents (nbformat v4 JSON) into
// an ordered list of cells. Only cell_type and source are kept.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/qiniu/x/log"

	"github.com/pdiddy/nbchecklist/pkg/types"
)

// Load opens the notebook at path and decodes its cells in document order.
// The path is used as given; callers resolve relative paths.
//
// A missing file yields an *Error of kind ErrNotFound. Content that is not
// JSON, lacks a top-level cells array, or has a cell without cell_type or
// source yields kind ErrParse.
func Load(path string) (*types.Notebook, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path, nil)
		}
		return nil, notFound(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, notFound(path, err)
	}
	if info.IsDir() {
		return nil, notFound(path, errors.New("is a directory"))
	}

	nb, err := Decode(f)
	if err != nil {
		return nil, &Error{Kind: ErrParse, Path: path, Err: err}
	}
	log.Debugf("loaded %s: nbformat %d.%d, %d cells", path, nb.NBFormat, nb.NBFormatMinor, len(nb.Cells))
	return nb, nil
}

// Decode reads a notebook document from r. Errors are returned unwrapped;
// Load attaches the path and ErrParse kind.
//
// Key names are matched exactly, the input must be valid UTF-8, and nothing
// but whitespace may follow the document.
func Decode(r io.Reader) (*types.Notebook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, errors.New("content is not valid UTF-8")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	rawCells, ok := top["cells"]
	if !ok || isNull(rawCells) {
		return nil, errors.New(`missing top-level "cells" array`)
	}
	var cells []map[string]json.RawMessage
	if err := json.Unmarshal(rawCells, &cells); err != nil {
		return nil, fmt.Errorf(`"cells": %w`, err)
	}

	nb := &types.Notebook{Cells: make([]types.Cell, 0, len(cells))}
	if err := optionalInt(top, "nbformat", &nb.NBFormat); err != nil {
		return nil, err
	}
	if err := optionalInt(top, "nbformat_minor", &nb.NBFormatMinor); err != nil {
		return nil, err
	}

	for i, fields := range cells {
		c, err := decodeCell(fields)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		nb.Cells = append(nb.Cells, c)
	}
	return nb, nil
}

func decodeCell(fields map[string]json.RawMessage) (types.Cell, error) {
	if fields == nil {
		return types.Cell{}, errors.New("not an object")
	}

	rawType, ok := fields["cell_type"]
	if !ok || isNull(rawType) {
		return types.Cell{}, errors.New("missing cell_type")
	}
	var cellType types.CellType
	if err := json.Unmarshal(rawType, &cellType); err != nil {
		return types.Cell{}, fmt.Errorf("cell_type: %w", err)
	}
	if cellType == "" {
		return types.Cell{}, errors.New("missing cell_type")
	}

	rawSource, ok := fields["source"]
	if !ok || isNull(rawSource) {
		return types.Cell{}, errors.New("missing source")
	}
	var source types.Source
	if err := json.Unmarshal(rawSource, &source); err != nil {
		return types.Cell{}, fmt.Errorf("source: %w", err)
	}
	return types.Cell{CellType: cellType, Source: source}, nil
}

func optionalInt(top map[string]json.RawMessage, key string, dst *int) error {
	raw, ok := top[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

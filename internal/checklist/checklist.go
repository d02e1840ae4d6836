// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package checklist finds top-level function definitions in notebook code
// cells and renders them as a checklist.
//
// Name extraction is a literal string split, not a Python parser: the cell
// must start with "def", the name is the second space-separated token of the
// first line, cut at the first "(".
package checklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/qiniu/x/log"

	"github.com/pdiddy/nbchecklist/pkg/types"
)

const defKeyword = "def"

// ErrMalformedDefinition reports a def cell whose first line has no name token.
var ErrMalformedDefinition = errors.New("malformed function definition")

// DefinitionError carries the cell and line that failed name extraction.
type DefinitionError struct {
	Cell int
	Line string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s in cell %d: %q", ErrMalformedDefinition, e.Cell, e.Line)
}

func (e *DefinitionError) Unwrap() error { return ErrMalformedDefinition }

// Selects reports whether a cell is scanned for a function name: it must be a
// code cell whose source begins with "def", with no leading whitespace.
func Selects(c types.Cell) bool {
	return c.IsCode() && strings.HasPrefix(c.Source.String(), defKeyword)
}

// FunctionName extracts the function name from a def cell's source. It
// returns ErrMalformedDefinition when the first line has fewer than two
// space-separated tokens. A token without "(" is returned whole.
func FunctionName(source string) (string, error) {
	line, _, _ := strings.Cut(source, "\n")
	line = strings.TrimSpace(line)

	tokens := strings.Split(line, " ")
	if len(tokens) < 2 {
		return "", &DefinitionError{Cell: -1, Line: line}
	}
	name, _, _ := strings.Cut(tokens[1], "(")
	return name, nil
}

// Extract returns the function names defined in nb, in cell order. Duplicate
// names are kept. The first malformed definition aborts extraction.
func Extract(nb *types.Notebook) ([]types.FunctionEntry, error) {
	var entries []types.FunctionEntry
	for i, c := range nb.Cells {
		if !Selects(c) {
			continue
		}
		name, err := FunctionName(c.Source.String())
		if err != nil {
			var defErr *DefinitionError
			if errors.As(err, &defErr) {
				defErr.Cell = i
			}
			return nil, err
		}
		log.Debugf("cell %d: found %s", i, name)
		entries = append(entries, types.FunctionEntry{Name: name, Cell: i})
	}
	return entries, nil
}

// Filter drops entries whose name matches any of the glob patterns. With no
// patterns it returns entries unchanged.
func Filter(entries []types.FunctionEntry, patterns []string) ([]types.FunctionEntry, error) {
	if len(patterns) == 0 {
		return entries, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}

	kept := make([]types.FunctionEntry, 0, len(entries))
	for _, e := range entries {
		if matchesAny(globs, e.Name) {
			log.Debugf("excluding %s", e.Name)
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CellType tags the kind of content a notebook cell holds.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	CellRaw      CellType = "raw"
)

// Notebook is the ordered cell list of a loaded .ipynb document.
// Outputs and notebook-level metadata are not kept.
type Notebook struct {
	// NBFormat and NBFormatMinor record the declared nbformat version, or zero
	// when the document omits them.
	NBFormat      int `json:"nbformat,omitempty"`
	NBFormatMinor int `json:"nbformat_minor,omitempty"`

	Cells []Cell `json:"cells"`
}

// Cell is one unit of notebook content.
type Cell struct {
	CellType CellType `json:"cell_type"`
	Source   Source   `json:"source"`
}

// IsCode reports whether the cell holds code.
func (c Cell) IsCode() bool {
	return c.CellType == CellCode
}

// Source is the text body of a cell. On disk nbformat stores it either as a
// single string or as an array of lines; both decode to one string.
type Source string

var errSourceType = errors.New("source must be a string or an array of strings")

// UnmarshalJSON accepts a JSON string or an array of strings. Array elements
// are concatenated, and an element other than the last that lacks a trailing
// newline gets one. null, alone or as an element, is rejected.
func (s *Source) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errSourceType
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Source(text)
		return nil
	}

	var elems []*string
	if err := json.Unmarshal(data, &elems); err != nil {
		return errSourceType
	}
	lines := make([]string, len(elems))
	for i, e := range elems {
		if e == nil {
			return fmt.Errorf("source line %d is null", i)
		}
		lines[i] = *e
	}
	*s = Source(JoinLines(lines))
	return nil
}

// String returns the source text.
func (s Source) String() string {
	return string(s)
}

// JoinLines joins nbformat line fragments into one newline-separated string.
func JoinLines(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if i < len(lines)-1 && !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

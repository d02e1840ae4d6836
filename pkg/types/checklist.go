// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FunctionEntry is one function name found in a notebook.
type FunctionEntry struct {
	// Name is the text between "def " and the first "(" on the cell's first line.
	Name string `json:"name" yaml:"name"`

	// Cell is the zero-based index of the cell the name came from.
	Cell int `json:"cell" yaml:"cell"`
}

// Report is the result of a checklist run, in notebook order.
type Report struct {
	Notebook  string          `json:"notebook" yaml:"notebook"`
	Functions []FunctionEntry `json:"functions" yaml:"functions"`
}

// Names returns the function names in report order.
func (r Report) Names() []string {
	names := make([]string, len(r.Functions))
	for i, f := range r.Functions {
		names[i] = f.Name
	}
	return names
}

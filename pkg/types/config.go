// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultNotebook is the notebook read when no path is given.
const DefaultNotebook = "FinanceDataProject.ipynb"

// DefaultHistoryDir is the directory holding the run history database.
const DefaultHistoryDir = ".nbchecklist"

// OutputFormat selects how a checklist report is rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ChecklistConfig holds settings for a single checklist run.
type ChecklistConfig struct {
	// Notebook is the path of the .ipynb file to scan. Relative paths are
	// resolved against the working directory by the caller.
	Notebook string `json:"notebook" yaml:"notebook"`

	// Format selects the output format: text, json, or yaml (default text).
	Format OutputFormat `json:"format" yaml:"format"`

	// Exclude lists glob patterns; functions whose name matches any of them
	// are left out of the checklist.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Record stores the run in the history database when true.
	Record bool `json:"record" yaml:"record"`

	// HistoryDir is the directory holding history.db (default .nbchecklist).
	HistoryDir string `json:"history_dir" yaml:"history_dir"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c ChecklistConfig) WithDefaults() ChecklistConfig {
	if c.Notebook == "" {
		c.Notebook = DefaultNotebook
	}
	if c.Format == "" {
		c.Format = OutputText
	}
	if c.HistoryDir == "" {
		c.HistoryDir = DefaultHistoryDir
	}
	return c
}

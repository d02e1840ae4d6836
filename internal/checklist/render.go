// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package checklist

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nbchecklist/pkg/types"
)

// Header opens the text checklist. Render follows it with a blank line.
const Header = "Functions implemented in the notebook:\n"

// Render writes report to w in the given format.
func Render(w io.Writer, format types.OutputFormat, report types.Report) error {
	switch format {
	case types.OutputText, "":
		return renderText(w, report)
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport(report))
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

func renderText(w io.Writer, report types.Report) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, f := range report.Functions {
		if _, err := fmt.Fprintf(w, "[x] %s\n", f.Name); err != nil {
			return err
		}
	}
	return nil
}

// jsonReport makes an empty checklist encode as [] rather than null.
func jsonReport(r types.Report) types.Report {
	if r.Functions == nil {
		r.Functions = []types.FunctionEntry{}
	}
	return r
}

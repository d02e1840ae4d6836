// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbchecklist/internal/history"
	"github.com/pdiddy/nbchecklist/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show checklist runs stored with --record",
	Long: `History lists earlier checklist runs saved in the history database
(.nbchecklist/history.db by default), newest first, with the functions each
run found.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	dir := viper.GetString("history_dir")
	if dir == "" {
		dir = types.DefaultHistoryDir
	}

	out := cmd.OutOrStdout()

	exists, err := history.Exists(dir)
	if err != nil {
		return err
	}
	if !exists {
		return printRuns(out, nil, jsonOutput)
	}

	store, err := history.NewStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	return printRuns(out, runs, jsonOutput)
}

func printRuns(out io.Writer, runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		if runs == nil {
			runs = []history.Run{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(out, "#%d  %s  %s  (%d functions)\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Notebook, len(r.Functions))
		if len(r.Functions) > 0 {
			fmt.Fprintf(out, "    %s\n", strings.Join(r.Functions, ", "))
		}
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

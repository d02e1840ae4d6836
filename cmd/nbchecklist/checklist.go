// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbchecklist/internal/checklist"
	"github.com/pdiddy/nbchecklist/internal/history"
	"github.com/pdiddy/nbchecklist/pkg/types"
)

func runChecklist(cmd *cobra.Command, args []string) error {
	cfg, err := checklistConfig(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	report, err := checklist.Run(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !cfg.Record {
		return nil
	}
	store, err := history.NewStore(cfg.HistoryDir)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, report)
	if err != nil {
		return err
	}
	log.Debugf("recorded run %d in %s", id, cfg.HistoryDir)
	return nil
}

// checklistConfig merges the positional notebook argument with viper
// settings (config file, NBCHECKLIST_* env, flags) and resolves the
// notebook path against the working directory.
func checklistConfig(args []string) (types.ChecklistConfig, error) {
	name := viper.GetString("notebook")
	if len(args) > 0 {
		name = args[0]
	}

	path, err := checklist.ResolveFromWorkingDir(name)
	if err != nil {
		return types.ChecklistConfig{}, err
	}

	cfg := types.ChecklistConfig{
		Notebook:   path,
		Format:     types.OutputFormat(viper.GetString("format")),
		Exclude:    viper.GetStringSlice("exclude"),
		Record:     viper.GetBool("record"),
		HistoryDir: viper.GetString("history_dir"),
	}
	return cfg.WithDefaults(), nil
}

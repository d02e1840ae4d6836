// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nbchecklist CLI, which lists the
// functions defined in a Jupyter notebook as a checklist.
package main

import (
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd scans a notebook and prints its function checklist.
var rootCmd = &cobra.Command{
	Use:   "nbchecklist [notebook]",
	Short: "List the functions defined in a Jupyter notebook as a checklist",
	Long: `nbchecklist reads a Jupyter notebook (.ipynb), finds every code cell that
starts with a "def" statement, and prints the function names as a checklist:

  Functions implemented in the notebook:

  [x] load_prices
  [x] plot_returns

The notebook defaults to FinanceDataProject.ipynb in the current directory.
Only the first line of each cell is read; decorated, indented, and async
definitions are not listed.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runChecklist,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nbchecklist.yaml or ~/.config/nbchecklist/nbchecklist.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-cell decisions to stderr")
	rootCmd.PersistentFlags().String("history-dir", ".nbchecklist", "directory holding the run history database")

	rootCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	rootCmd.Flags().StringSlice("exclude", nil, "glob pattern of function names to leave out (repeatable)")
	rootCmd.Flags().Bool("record", false, "store this run in the history database")

	bindFlags()
}

// bindFlags lets flags override config file and environment values.
func bindFlags() {
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("history_dir", rootCmd.PersistentFlags().Lookup("history-dir"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("record", rootCmd.Flags().Lookup("record"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nbchecklist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nbchecklist"))
		}
	}

	viper.SetEnvPrefix("NBCHECKLIST")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	initLogging()
	if err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}

// initLogging sends leveled logs to stderr, at debug level when verbose.
func initLogging() {
	log.SetOutput(rootCmd.ErrOrStderr())
	if viper.GetBool("verbose") {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Linfo)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/uefn-tools/versedb/appender"
	"github.com/uefn-tools/versedb/collector"
	collector_contracts "github.com/uefn-tools/versedb/collector/contracts"
	"github.com/uefn-tools/versedb/config"
	"github.com/uefn-tools/versedb/constants/lipgloss"
	"github.com/uefn-tools/versedb/locator"
	locator_contracts "github.com/uefn-tools/versedb/locator/contracts"
	"github.com/uefn-tools/versedb/utils"
	utils_contracts "github.com/uefn-tools/versedb/utils/contracts"
)

// RootDependencies holds everything a command handler needs for one run.
type RootDependencies struct {
	Cwd       string
	Config    *config.Config
	Selector  utils_contracts.ISelector
	Picker    utils_contracts.IDirectoryPicker
	Locator   locator_contracts.ILocator
	Collector collector_contracts.ICollector
}

// rootCmd: versedb
var rootCmd = &cobra.Command{
	Use:   "versedb",
	Short: "Build an aggregated database of Verse source files.",
	Long: `versedb discovers Verse source files scattered across your filesystem and
concatenates them into a single markdown database. The database feeds
coding-assistant rule documents and pattern catalogs with real project code.
Running versedb with no arguments performs one full aggregation pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		rootDependencies := handleRootCommand(cmd)
		handleCollectCommand(rootDependencies)
	},
}

// handleRootCommand loads configuration and wires the collaborators.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(1)
	}

	cfg := config.LoadConfigs(cmd, cwd)
	databasePath := cfg.DatabasePath(cwd)

	resilient := appender.NewResilientAppender(
		appender.NewFileAppender(databasePath),
		cfg.RetryAttempts,
		time.Duration(cfg.RetryDelayMs)*time.Millisecond,
	)

	picker := utils.NewTerminalDirectoryPicker()

	return &RootDependencies{
		Cwd:       cwd,
		Config:    cfg,
		Selector:  utils.NewPtermSelector(),
		Picker:    picker,
		Locator:   locator.NewProjectLocator(picker, cfg.WellKnownPaths, cfg.FilePattern),
		Collector: collector.NewCollector(databasePath, cfg.FilePattern, resilient, cfg.EnableSnapshot),
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd)
}

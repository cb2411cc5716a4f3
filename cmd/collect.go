package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/uefn-tools/versedb/constants/lipgloss"
	locator_contracts "github.com/uefn-tools/versedb/locator/contracts"
	"github.com/uefn-tools/versedb/utils"
)

// collectCmd: versedb collect
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one full aggregation pass over discovered Verse projects.",
	Long: `The 'collect' subcommand locates Verse projects, walks each one for files
matching the configured pattern, and appends their contents to the database
between per-file marker lines. The database is truncated and re-initialized
with a generation header at the start of every run.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleCollectCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func handleCollectCommand(rootDependencies *RootDependencies) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go utils.GracefulShutdown(ctx, cancel, func() {})

	modeIndex, err := rootDependencies.Selector.Select(
		"How should versedb find your Verse projects?",
		[]string{
			"Choose a single project directory",
			"Scan all mounted volumes",
		},
	)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	mode := locator_contracts.ExplicitDirectory
	if modeIndex == 1 {
		mode = locator_contracts.WholeFilesystemScan
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)

	var spinnerLocate *pterm.SpinnerPrinter
	if mode == locator_contracts.WholeFilesystemScan {
		spinnerLocate, _ = spinner.Start("Scanning volumes for Verse projects...")
	}

	projects, err := rootDependencies.Locator.Locate(mode)

	if spinnerLocate != nil {
		spinnerLocate.Stop()
		fmt.Print("\r")
	}

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	if len(projects) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No Verse projects found; the database will only contain its header."))
	}

	spinnerCollect, _ := spinner.Start("Aggregating Verse files...")
	summary, err := rootDependencies.Collector.Collect(ctx, projects)
	spinnerCollect.Stop()
	fmt.Print("\r")

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println(lipgloss.Yellow.Render("🔄 Run cancelled."))
			os.Exit(1)
		}
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	databasePath := rootDependencies.Config.DatabasePath(rootDependencies.Cwd)
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Aggregated %d files from %d projects into %s",
		summary.FilesAggregated, summary.Projects, databasePath)))

	if summary.FilesSkipped > 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("%d files were skipped; see warnings above.", summary.FilesSkipped)))
	}

	if rootDependencies.Config.EnableSnapshot {
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Since last run: %d added, %d changed, %d removed",
			summary.FilesAdded, summary.FilesChanged, summary.FilesRemoved)))
	}
}

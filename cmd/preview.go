package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uefn-tools/versedb/constants/lipgloss"
	"github.com/uefn-tools/versedb/utils"
)

// previewCmd: versedb preview [path]
var previewCmd = &cobra.Command{
	Use:   "preview [path]",
	Short: "Render the aggregated database (or a single file) to the terminal",
	Long: `The 'preview' command prints the aggregated database with syntax
highlighting so its contents can be inspected without an editor. Pass a path
to preview a single file instead.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handlePreviewCommand(rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func handlePreviewCommand(rootDependencies *RootDependencies, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := rootDependencies.Config.DatabasePath(rootDependencies.Cwd)
	if len(args) > 0 {
		path = args[0]
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Cannot read %s: %v", path, err)))
		os.Exit(1)
	}

	language := utils.DetectLanguageFromPath(path)
	if err := utils.RenderAndPrintWithContext(ctx, string(content), language, rootDependencies.Config.Theme); err != nil {
		if err == context.Canceled {
			return
		}
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error rendering preview: %v", err)))
		os.Exit(1)
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uefn-tools/versedb/collector"
	"github.com/uefn-tools/versedb/constants/lipgloss"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the aggregated database and its snapshot",
	Long: `The 'reset' command removes the aggregated database file and the run
snapshot next to it. The next 'collect' run starts from a clean slate and
reports every file as added.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		handleResetCommand(force, cmd)
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Force reset without confirmation")

	rootCmd.AddCommand(resetCmd)
}

func handleResetCommand(force bool, cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	databasePath := rootDependencies.Config.DatabasePath(rootDependencies.Cwd)

	if !force {
		reader := bufio.NewReader(os.Stdin)
		fmt.Printf("Are you sure you want to delete %s? (y/N): ", databasePath)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println(lipgloss.Yellow.Render("Reset cancelled."))
			return
		}
	}

	removed := false
	for _, path := range []string{databasePath, collector.SnapshotPath(databasePath)} {
		err := os.Remove(path)
		if err == nil {
			removed = true
			continue
		}
		if !os.IsNotExist(err) {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error removing %s: %v", path, err)))
			os.Exit(1)
		}
	}

	if removed {
		fmt.Println(lipgloss.Green.Render("✓ Database has been reset."))
	} else {
		fmt.Println(lipgloss.Yellow.Render("Nothing to reset."))
	}
}

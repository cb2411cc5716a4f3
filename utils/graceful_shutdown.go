package utils

import (
	"context"
	"fmt"

	"github.com/uefn-tools/versedb/constants/lipgloss"
)

// GracefulShutdown waits for the context to be cancelled (SIGINT/SIGTERM via
// signal.NotifyContext) and runs the cleanup callback once before returning.
func GracefulShutdown(ctx context.Context, cancel context.CancelFunc, onShutdown func()) {
	<-ctx.Done()

	fmt.Println(lipgloss.Yellow.Render("\n🔄 Shutting down..."))
	onShutdown()
	cancel()
}

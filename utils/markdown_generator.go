package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderAndPrintWithContext renders content to the terminal with syntax
// highlighting, checking for cancellation between lines so a large database
// preview can be interrupted.
func RenderAndPrintWithContext(ctx context.Context, content string, language string, theme string) error {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		select {
		case <-ctx.Done():
			fmt.Printf("\n\n🔄 Output interrupted...\n")
			return ctx.Err()
		default:
		}

		var buf bytes.Buffer
		if err := quick.Highlight(&buf, line+"\n", language, "terminal256", theme); err != nil {
			return err
		}
		fmt.Print(buf.String())

		// Check more frequently for responsive interruption on long files.
		if i%5 == 0 {
			select {
			case <-ctx.Done():
				fmt.Printf("\n\n🔄 Output interrupted...\n")
				return ctx.Err()
			default:
			}
		}
	}

	return nil
}

// DetectLanguageFromPath maps a file path to a chroma lexer name. The
// database itself is markdown; Verse has no dedicated lexer, so it falls
// back to plain text.
func DetectLanguageFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".md"):
		return "markdown"
	case strings.HasSuffix(path, ".json"):
		return "json"
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "yaml"
	default:
		return "plaintext"
	}
}

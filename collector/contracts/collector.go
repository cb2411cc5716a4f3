package contracts

import (
	"context"

	"github.com/uefn-tools/versedb/collector/models"
)

// ICollector runs one full aggregation pass over the located project
// directories.
type ICollector interface {
	Collect(ctx context.Context, projects []string) (*models.RunSummary, error)
}

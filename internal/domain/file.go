package domain

import (
	"context"
)

// ImportArchive keeps the raw text of workout log imports so they can be
// re-parsed later
type ImportArchive interface {
	// ArchiveImport stores text under the namespace and returns its object URL
	ArchiveImport(ctx context.Context, namespace string, text string) (string, error)
}

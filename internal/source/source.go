// Package source is the ingestion boundary for the promotions export.
// Each implementation owns its transport and collapses the legacy key
// variants of the export into the canonical raw record; everything past
// this package sees one shape only.
package source

import (
	"context"

	"promohub/pkg/models"
)

// Source supplies the raw promotion list as an ordered sequence of
// records. It is fetched once per load, never incrementally.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.RawPromotionRecord, error)
}

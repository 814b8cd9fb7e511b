// Package metadata fetches descriptive video attributes for canonical URLs.
package metadata

import (
	"context"

	"github.com/rdg-stuttgart/songwish-processor/internal/models"
)

// Provider looks up video metadata for a canonical URL. Lookups never fail
// across the boundary: every provider error surfaces as the failure variant
// of the FetchResult.
type Provider interface {
	Fetch(ctx context.Context, cleanURL string) models.FetchResult
}

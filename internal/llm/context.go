package llm

import (
	"context"
	"strings"
)

type purposeKey struct{}

// PurposeCatalog is the kind of every catalog generation call. The full
// label carries the region, as in "catalog:MA-03".
const PurposeCatalog = "catalog"

// CatalogPurpose returns the purpose label of a generation call for a region.
func CatalogPurpose(regionID string) string {
	return PurposeCatalog + ":" + regionID
}

// PurposeRegion returns the region of a catalog purpose label.
func PurposeRegion(purpose string) (string, bool) {
	kind, regionID, ok := strings.Cut(purpose, ":")
	if !ok || kind != PurposeCatalog || regionID == "" {
		return "", false
	}
	return regionID, true
}

// WithPurpose labels calls made with ctx so the request log can attribute
// them.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

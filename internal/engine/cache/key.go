package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/unleaded-cli/unleaded/internal/autodev"
)

const (
	// keyPrefix leads every listings cache key.
	keyPrefix = "listings"

	// anySentinel substitutes for an absent optional search parameter so
	// the key stays positional.
	anySentinel = "any"

	// FreshnessWindow is how long a cached snapshot is trusted before it
	// is bypassed in favor of the API.
	FreshnessWindow = 24 * time.Hour
)

// Key derives the deterministic cache key for a search-parameter tuple.
// Identical tuples always map to the same key; any differing parameter
// changes it.
func Key(p autodev.SearchParams) string {
	parts := []string{
		keyPrefix,
		p.Zip,
		strconv.Itoa(p.Distance),
		p.Engine,
		orAny(p.Brand),
		orAny(p.Model),
		orAny(p.MilesRange),
		orAny(p.PriceRange),
		orAny(p.YearRange),
	}
	return strings.Join(parts, "_")
}

// Fresh reports whether a snapshot taken at timestampMillis is still inside
// the freshness window at time now.
func Fresh(timestampMillis int64, now time.Time) bool {
	age := now.UnixMilli() - timestampMillis
	return age < FreshnessWindow.Milliseconds()
}

func orAny(value string) string {
	if value == "" {
		return anySentinel
	}
	return value
}

package autodev

import (
	"net/url"
	"strconv"
)

// Range defaults applied when the caller leaves a range filter empty.
const (
	DefaultMilesRange = "0-25100"
	DefaultPriceRange = "0-50000"
	DefaultYearRange  = "2023-2026"
)

// SearchParams is one search-parameter tuple. Brand, Model, and the range
// filters are optional; empty means unconstrained (ranges fall back to the
// defaults above when the request is built).
type SearchParams struct {
	Zip        string
	Distance   int
	Engine     string
	Brand      string
	Model      string
	MilesRange string
	PriceRange string
	YearRange  string
}

// Query builds the listings-endpoint query parameters for one page.
// Ranges are encoded as "min-max" strings; brand and model are omitted
// entirely when unset.
func (p SearchParams) Query(page, limit int) url.Values {
	q := url.Values{}
	q.Set("zip", p.Zip)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	q.Set("distance", strconv.Itoa(p.Distance))
	q.Set("retailListing.miles", orDefault(p.MilesRange, DefaultMilesRange))
	q.Set("retailListing.price", orDefault(p.PriceRange, DefaultPriceRange))
	q.Set("vehicle.year", orDefault(p.YearRange, DefaultYearRange))
	q.Set("vehicle.fuel", p.Engine)
	if p.Brand != "" {
		q.Set("vehicle.make", p.Brand)
	}
	if p.Model != "" {
		q.Set("vehicle.model", p.Model)
	}
	return q
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

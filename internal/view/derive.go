package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/unleaded-cli/unleaded/internal/schema"
)

// Filter keeps the listings matching every active predicate: free-text
// search (case-insensitive substring over trim, model, exterior color, city,
// and dealer), the CPO toggle, and the exact-match model and year filters.
// The predicates commute, so application order does not matter.
func Filter(listings []schema.Listing, s State) []schema.Listing {
	kept := make([]schema.Listing, 0, len(listings))
	for _, l := range listings {
		if s.Search != "" && !matchesSearch(l, s.Search) {
			continue
		}
		if s.CpoOnly && !l.IsCpo() {
			continue
		}
		if s.ModelFilter != "" && l.Vehicle.Model != s.ModelFilter {
			continue
		}
		if s.YearFilter != 0 && l.Vehicle.Year != s.YearFilter {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

func matchesSearch(l schema.Listing, search string) bool {
	needle := strings.ToLower(search)
	fields := []string{
		deref(l.Vehicle.Trim),
		l.Vehicle.Model,
		deref(l.Vehicle.ExteriorColor),
		l.Retail.City,
		l.Retail.Dealer,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Sort orders listings by key. Ascending puts missing prices last (a missing
// price compares larger than any real price) and treats missing miles as 0.
// Descending is a full reversal of the ascending order, so ties flip along
// with everything else.
func Sort(listings []schema.Listing, key SortKey, dir SortDir) []schema.Listing {
	sorted := make([]schema.Listing, len(listings))
	copy(sorted, listings)

	rank := sortRank(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})

	if dir == SortDesc {
		reverse(sorted)
	}
	return sorted
}

func sortRank(key SortKey) func(schema.Listing) float64 {
	switch key {
	case SortByMiles:
		return func(l schema.Listing) float64 {
			if l.Retail.Miles == nil {
				return 0
			}
			return *l.Retail.Miles
		}
	case SortByYear:
		return func(l schema.Listing) float64 {
			return float64(l.Vehicle.Year)
		}
	case SortByListed:
		return func(l schema.Listing) float64 {
			return float64(listedTime(l).UnixMilli())
		}
	default: // SortByPrice
		return func(l schema.Listing) float64 {
			if l.Retail.Price == nil {
				return math.Inf(1)
			}
			return *l.Retail.Price
		}
	}
}

func listedTime(l schema.Listing) time.Time {
	t, err := time.Parse(time.RFC3339, l.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func reverse(listings []schema.Listing) {
	for i, j := 0, len(listings)-1; i < j; i, j = i+1, j-1 {
		listings[i], listings[j] = listings[j], listings[i]
	}
}

// TotalPages is the page count for n filtered listings: at least 1, even
// when every listing is filtered out.
func TotalPages(n, pageSize int) int {
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices one page out of the sorted listings.
func Paginate(listings []schema.Listing, page, pageSize int) []schema.Listing {
	start := page * pageSize
	if start >= len(listings) {
		return nil
	}
	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}

// Visible is the page of listings to display for the current state:
// filter, then sort, then slice.
func Visible(listings []schema.Listing, s State) []schema.Listing {
	sorted := Sort(Filter(listings, s), s.SortKey, s.SortDir)
	return Paginate(sorted, s.Page, s.PageSize)
}

// Models returns the distinct non-empty model names across the full listing
// set, sorted lexicographically. Stop-listed models normalized to "" never
// appear.
func Models(listings []schema.Listing) []string {
	seen := make(map[string]struct{})
	for _, l := range listings {
		if l.Vehicle.Model != "" {
			seen[l.Vehicle.Model] = struct{}{}
		}
	}
	models := make([]string, 0, len(seen))
	for m := range seen {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

// Years returns the distinct years across the full listing set, most recent
// first.
func Years(listings []schema.Listing) []int {
	seen := make(map[int]struct{})
	for _, l := range listings {
		seen[l.Vehicle.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unleaded-cli/unleaded/internal/schema"
)

type listingSpec struct {
	id    string
	model string
	year  int
	price *float64
	miles *float64
	trim  string
	color string
	city  string
	deal  string
	cpo   bool
	made  string
}

func f(v float64) *float64 { return &v }

func build(s listingSpec) schema.Listing {
	l := schema.Listing{
		ID:        s.id,
		VIN:       "VIN" + s.id,
		CreatedAt: s.made,
		Online:    true,
		Vehicle: schema.Vehicle{
			Model: s.model,
			Year:  s.year,
		},
		Retail: schema.RetailListing{
			Price:  s.price,
			Miles:  s.miles,
			City:   s.city,
			Dealer: s.deal,
		},
	}
	if s.trim != "" {
		l.Vehicle.Trim = &s.trim
	}
	if s.color != "" {
		l.Vehicle.ExteriorColor = &s.color
	}
	if s.cpo {
		cpo := true
		l.Retail.Cpo = &cpo
	}
	if l.CreatedAt == "" {
		l.CreatedAt = "2025-06-01T00:00:00Z"
	}
	return l
}

func fixtures() []schema.Listing {
	return []schema.Listing{
		build(listingSpec{id: "a", model: "Ioniq 5", year: 2024, price: f(31000), miles: f(12000), trim: "SEL", color: "Cyber Gray", city: "Daly City", deal: "Bay EV", made: "2025-05-01T00:00:00Z"}),
		build(listingSpec{id: "b", model: "EV6", year: 2023, price: f(28500), miles: f(30000), trim: "Wind", color: "Snow White", city: "Oakland", deal: "East Bay Kia", cpo: true, made: "2025-04-15T00:00:00Z"}),
		build(listingSpec{id: "c", model: "Ioniq 5", year: 2025, price: nil, miles: nil, trim: "Limited", color: "Atlas White", city: "San Jose", deal: "Stevens Creek", made: "2025-06-10T00:00:00Z"}),
		build(listingSpec{id: "d", model: "Model 3", year: 2024, price: f(35900), miles: f(8000), color: "Deep Blue", city: "Fremont", deal: "Tesla Fremont", cpo: true, made: "2025-06-05T00:00:00Z"}),
		build(listingSpec{id: "e", model: "Niro", year: 2023, price: f(24990), miles: f(41000), trim: "EX", color: "Runway Red", city: "Daly City", deal: "Serramonte Kia", made: "2025-03-20T00:00:00Z"}),
	}
}

func ids(listings []schema.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		search string
		want   []string
	}{
		{"ioniq", []string{"a", "c"}},
		{"IONIQ", []string{"a", "c"}},
		{"daly", []string{"a", "e"}},    // city
		{"white", []string{"b", "c"}},   // exterior color
		{"kia", []string{"b", "e"}},     // dealer
		{"limited", []string{"c"}},      // trim
		{"", []string{"a", "b", "c", "d", "e"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("search=%q", tt.search), func(t *testing.T) {
			s := New()
			s.Search = tt.search
			got := ids(Filter(fixtures(), s))
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFilter_Cpo(t *testing.T) {
	s := New().ToggleCpo()
	assert.Equal(t, []string{"b", "d"}, ids(Filter(fixtures(), s)))
}

func TestFilter_ModelExactMatch(t *testing.T) {
	s := New().ApplyModelFilter("Ioniq 5")
	assert.Equal(t, []string{"a", "c"}, ids(Filter(fixtures(), s)))

	s = New().ApplyModelFilter("Ioniq")
	assert.Empty(t, ids(Filter(fixtures(), s)), "model filter is exact, not substring")
}

func TestFilter_Year(t *testing.T) {
	s := New().ApplyYearFilter(2023)
	assert.Equal(t, []string{"b", "e"}, ids(Filter(fixtures(), s)))
}

func TestFilter_Conjunction(t *testing.T) {
	s := New().ToggleCpo().ApplyYearFilter(2024)
	s.Search = "tesla"
	assert.Equal(t, []string{"d"}, ids(Filter(fixtures(), s)))
}

func TestFilter_NeverGrows(t *testing.T) {
	all := fixtures()
	states := []State{
		New(),
		New().ToggleCpo(),
		New().ApplyModelFilter("EV6"),
		New().ApplyYearFilter(2025),
	}
	for _, s := range states {
		assert.LessOrEqual(t, len(Filter(all, s)), len(all))
	}
}

func TestFilter_PredicatesCommute(t *testing.T) {
	all := fixtures()
	combined := New().ToggleCpo().ApplyYearFilter(2024)

	cpoOnly := New().ToggleCpo()
	yearOnly := New().ApplyYearFilter(2024)

	viaYearFirst := Filter(Filter(all, yearOnly), cpoOnly)
	viaCpoFirst := Filter(Filter(all, cpoOnly), yearOnly)

	assert.Equal(t, ids(Filter(all, combined)), ids(viaYearFirst))
	assert.Equal(t, ids(viaYearFirst), ids(viaCpoFirst))
}

func TestSort_PriceAscMissingLast(t *testing.T) {
	got := ids(Sort(fixtures(), SortByPrice, SortAsc))
	assert.Equal(t, []string{"e", "b", "a", "d", "c"}, got)
}

func TestSort_MilesAscMissingAsZero(t *testing.T) {
	got := ids(Sort(fixtures(), SortByMiles, SortAsc))
	assert.Equal(t, []string{"c", "d", "a", "b", "e"}, got)
}

func TestSort_YearAscStable(t *testing.T) {
	// Equal years keep input order.
	got := ids(Sort(fixtures(), SortByYear, SortAsc))
	assert.Equal(t, []string{"b", "e", "a", "d", "c"}, got)
}

func TestSort_Listed(t *testing.T) {
	got := ids(Sort(fixtures(), SortByListed, SortAsc))
	assert.Equal(t, []string{"e", "b", "a", "d", "c"}, got)
}

func TestSort_DescIsFullReversal(t *testing.T) {
	for _, key := range []SortKey{SortByPrice, SortByMiles, SortByYear, SortByListed} {
		asc := ids(Sort(fixtures(), key, SortAsc))
		desc := ids(Sort(fixtures(), key, SortDesc))
		require.Len(t, desc, len(asc))
		for i := range asc {
			assert.Equal(t, asc[i], desc[len(desc)-1-i], "key %s index %d", key, i)
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	all := fixtures()
	before := ids(all)
	_ = Sort(all, SortByPrice, SortDesc)
	assert.Equal(t, before, ids(all))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, pageSize, want int
	}{
		{0, 15, 1},
		{1, 15, 1},
		{15, 15, 1},
		{16, 15, 2},
		{237, 15, 16},
		{300, 15, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.pageSize), "n=%d", tt.n)
	}
}

func TestPaginate(t *testing.T) {
	all := fixtures()

	page0 := Paginate(all, 0, 2)
	assert.Equal(t, []string{"a", "b"}, ids(page0))

	page2 := Paginate(all, 2, 2)
	assert.Equal(t, []string{"e"}, ids(page2), "last page may be short")

	assert.Empty(t, Paginate(all, 3, 2), "pages past the end are empty")
}

func TestVisible_EveryPageWithinBounds(t *testing.T) {
	all := fixtures()
	s := New()
	s.PageSize = 2

	total := TotalPages(len(Filter(all, s)), s.PageSize)
	seen := 0
	for page := 0; page < total; page++ {
		s.Page = page
		v := Visible(all, s)
		assert.LessOrEqual(t, len(v), s.PageSize)
		assert.NotEmpty(t, v)
		seen += len(v)
	}
	assert.Equal(t, len(all), seen, "pages partition the filtered set")
}

func TestModels(t *testing.T) {
	got := Models(fixtures())
	assert.Equal(t, []string{"EV6", "Ioniq 5", "Model 3", "Niro"}, got)
}

func TestModels_SkipsEmpty(t *testing.T) {
	all := append(fixtures(), build(listingSpec{id: "x", model: "", year: 2024}))
	got := Models(all)
	assert.NotContains(t, got, "")
	assert.Len(t, got, 4)
}

func TestYears_DistinctDescending(t *testing.T) {
	got := Years(fixtures())
	assert.Equal(t, []int{2025, 2024, 2023}, got)
}

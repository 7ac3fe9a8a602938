package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unleaded-cli/unleaded/internal/autodev"
)

func baseParams() autodev.SearchParams {
	return autodev.SearchParams{
		Zip:        "94016",
		Distance:   50,
		Engine:     "electric",
		Brand:      "Hyundai",
		Model:      "Ioniq 5",
		MilesRange: "0-25100",
		PriceRange: "0-50000",
		YearRange:  "2023-2026",
	}
}

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key(baseParams()), Key(baseParams()))
}

func TestKey_Format(t *testing.T) {
	got := Key(baseParams())
	assert.Equal(t, "listings_94016_50_electric_Hyundai_Ioniq 5_0-25100_0-50000_2023-2026", got)
}

func TestKey_AbsentParamsUseSentinel(t *testing.T) {
	p := baseParams()
	p.Brand = ""
	p.Model = ""
	p.MilesRange = ""
	p.PriceRange = ""
	p.YearRange = ""

	assert.Equal(t, "listings_94016_50_electric_any_any_any_any_any", Key(p))
}

func TestKey_AnyDifferingParamChangesKey(t *testing.T) {
	base := Key(baseParams())

	mutations := []func(*autodev.SearchParams){
		func(p *autodev.SearchParams) { p.Zip = "10001" },
		func(p *autodev.SearchParams) { p.Distance = 100 },
		func(p *autodev.SearchParams) { p.Engine = "hybrid" },
		func(p *autodev.SearchParams) { p.Brand = "Kia" },
		func(p *autodev.SearchParams) { p.Model = "EV6" },
		func(p *autodev.SearchParams) { p.MilesRange = "0-10000" },
		func(p *autodev.SearchParams) { p.PriceRange = "0-30000" },
		func(p *autodev.SearchParams) { p.YearRange = "2024-2026" },
	}

	for _, mutate := range mutations {
		p := baseParams()
		mutate(&p)
		assert.NotEqual(t, base, Key(p))
	}
}

func TestFresh_Boundary(t *testing.T) {
	now := time.Now()

	justInside := now.Add(-FreshnessWindow).Add(time.Millisecond).UnixMilli()
	assert.True(t, Fresh(justInside, now), "entry 1ms inside the window is a hit")

	justOutside := now.Add(-FreshnessWindow).Add(-time.Millisecond).UnixMilli()
	assert.False(t, Fresh(justOutside, now), "entry 1ms past the window is a miss")

	exactly := now.Add(-FreshnessWindow).UnixMilli()
	assert.False(t, Fresh(exactly, now), "entry exactly at the window is a miss")
}

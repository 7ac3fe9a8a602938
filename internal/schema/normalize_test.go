package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModel_StopList(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain", "solterra"},
		{"mixed case", "Solterra"},
		{"surrounding whitespace", "  Solterra  "},
		{"upper", "PROMASTER"},
		{"hyphenated", "e-transit"},
		{"vinfast", "VF8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, NormalizeModel(tt.input))
		})
	}
}

func TestNormalizeModel_Rules(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Tesla digit models.
		{"3", "Model 3"},
		{"2", "Model 2"},
		{"4", "Model 4"},

		// Variant collapses.
		{"Bolt EUV", "Bolt"},
		{"bolt ev", "Bolt"},
		{"Hummer EV Pickup", "Hummer"},
		{"Q4 e-tron", "Q4"},
		{"q8 E-TRON", "Q8"},
		{"SQ6 e-tron", "SQ6"},
		{"sq6", "SQ6"},
		{"C40 Recharge", "C40"},
		{"e-tron GT", "E-tron"},
		{"id.4", "ID.4"},
		{"ID.7", "ID.7"},
		{"Mustang Mach-E", "Mach-E"},
		{"mach-e", "Mach-E"},
		{"Escalade IQ", "Escalade"},
		{"Sierra EV", "Sierra"},
		{"Silverado EV", "Silverado"},
		{"Equinox EV", "Equinox"},
		{"Blazer EV", "Blazer"},
		{"F-150 Lightning", "F-150"},
		{"Niro EV", "Niro"},
		{"Lyriq-V", "Lyriq"},

		// Garbage filter.
		{"", ""},
		{"x", ""},

		// Fallback title-casing.
		{"IONIQ 5", "Ioniq 5"},
		{"ARIYA", "Ariya"},
		{"model  y", "Model Y"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeModel(tt.input))
		})
	}
}

// Rule order matters: the specific brand collapses must win over the
// title-case fallback even when both would match.
func TestNormalizeModel_RulePrecedence(t *testing.T) {
	assert.Equal(t, "Bolt", NormalizeModel("Bolt EUV"))
	assert.Equal(t, "Q4", NormalizeModel("Q4 e-tron"))
	assert.Equal(t, "ID.4", NormalizeModel("id.4"))
}

func TestNormalizeModel_Idempotent(t *testing.T) {
	inputs := []string{
		"3", "Bolt EUV", "Hummer EV", "Q4 e-tron", "SQ6 e-tron", "sq6",
		"C40 Recharge", "e-tron Sportback", "id.4", "Mustang Mach-E",
		"Escalade IQL", "Sierra EV Denali", "Silverado EV", "Equinox EV",
		"Blazer EV SS", "F-150 Lightning", "Niro EV", "Lyriq-V",
		"IONIQ 5", "ARIYA", "ioniq 6 limited", "Solterra", "x", "",
		"Model 3", "Taycan", "EV6", "i4 eDrive40", "2 fast 2 furious",
	}

	for _, input := range inputs {
		once := NormalizeModel(input)
		assert.Equal(t, once, NormalizeModel(once), "normalize(%q) = %q is not a fixed point", input, once)
	}
}

func TestNormalizeSimple(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ELECTRIC", "Electric"},
		{"gas", "Gas"},
		{"hYbRiD", "Hybrid"},
		{"", ""},
		// Single-word capitalization, not per-word.
		{"plug-in hybrid", "Plug-in hybrid"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSimple(tt.input))
	}
}

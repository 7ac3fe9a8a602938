package schema

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopList holds lowercase model names that are never surfaced as results.
// A stop-listed model normalizes to the empty string.
var stopList = map[string]struct{}{
	"solterra":  {},
	"promaster": {},
	"hardtop":   {},
	"e-transit": {},
	"ocean":     {},
	"vf8":       {},
	"smart":     {},
	"fortwo":    {},
}

// modelRule maps a raw model name matching pattern to its canonical form.
// replace receives the regexp submatches (match[0] is the full match).
type modelRule struct {
	pattern *regexp.Regexp
	replace func(match []string) string
}

// fixed returns a replace function that ignores the match and returns s.
func fixed(s string) func([]string) string {
	return func([]string) string { return s }
}

// modelRules is tried top-to-bottom; the first matching rule wins, so the
// brand-specific collapses must stay ahead of the generic ones. Patterns are
// anchored and case-insensitive. Every rule output is a fixed point of
// NormalizeModel, which keeps normalization idempotent.
var modelRules = []modelRule{
	// Tesla digits: "3" -> "Model 3".
	{regexp.MustCompile(`(?i)^([234])$`), func(m []string) string { return "Model " + m[1] }},

	// Variant collapses: "Bolt EUV" -> "Bolt", "Hummer EV Pickup" -> "Hummer".
	{regexp.MustCompile(`(?i)^bolt\s+.+$`), fixed("Bolt")},
	{regexp.MustCompile(`(?i)^hummer\s+.+$`), fixed("Hummer")},

	// Audi SQ-series before Q-series: "SQ6 e-tron" -> "SQ6".
	{regexp.MustCompile(`(?i)^(sq\d+)(\s+.+)?$`), func(m []string) string { return strings.ToUpper(m[1]) }},

	// "Q4 e-tron" -> "Q4", "Q8 e-tron" -> "Q8".
	{regexp.MustCompile(`(?i)^(q\d+)\s+.+$`), func(m []string) string { return "Q" + m[1][1:] }},

	// Volvo: "C40 Recharge" -> "C40".
	{regexp.MustCompile(`(?i)^(c\d+)\s+.+$`), func(m []string) string { return "C" + m[1][1:] }},

	{regexp.MustCompile(`(?i)^e-tron\s+.+$`), fixed("E-tron")},

	// VW: "id.4" -> "ID.4".
	{regexp.MustCompile(`(?i)^id\.(\d+)$`), func(m []string) string { return "ID." + m[1] }},

	// Ford: "Mustang Mach-E" -> "Mach-E". The bare form is matched too so
	// the rule output survives a second pass unchanged.
	{regexp.MustCompile(`(?i)^(mustang\s+)?mach-e$`), fixed("Mach-E")},

	{regexp.MustCompile(`(?i)^escalade\s+.+$`), fixed("Escalade")},
	{regexp.MustCompile(`(?i)^sierra\s+.+$`), fixed("Sierra")},
	{regexp.MustCompile(`(?i)^silverado\s+.+$`), fixed("Silverado")},
	{regexp.MustCompile(`(?i)^equinox\s+.+$`), fixed("Equinox")},
	{regexp.MustCompile(`(?i)^blazer\s+.+$`), fixed("Blazer")},
	{regexp.MustCompile(`(?i)^f-150\s+.+$`), fixed("F-150")},
	{regexp.MustCompile(`(?i)^niro\s+.+$`), fixed("Niro")},
	{regexp.MustCompile(`(?i)^lyriq.+$`), fixed("Lyriq")},

	// Garbage filter: anything of length <= 1 maps to empty.
	{regexp.MustCompile(`^.{0,1}$`), fixed("")},
}

// NormalizeModel canonicalizes a raw vehicle model name. Stop-listed models
// and garbage map to the empty string; otherwise the first matching rule in
// modelRules applies, and unmatched names fall back to capitalizing each
// whitespace-separated word ("IONIQ 6" -> "Ioniq 6"). The transform is
// idempotent.
func NormalizeModel(value string) string {
	trimmed := strings.TrimSpace(value)

	if _, stopped := stopList[strings.ToLower(trimmed)]; stopped {
		return ""
	}

	for _, rule := range modelRules {
		if m := rule.pattern.FindStringSubmatch(trimmed); m != nil {
			return rule.replace(m)
		}
	}

	return capitalizeWords(trimmed)
}

// NormalizeSimple lowercases the whole string and uppercases the first
// character only: "ELECTRIC" -> "Electric". Used for make and fuel.
func NormalizeSimple(value string) string {
	return capitalizeFirst(strings.ToLower(value))
}

// capitalizeWords capitalizes the first character of each whitespace-separated
// word, lowercasing the rest. Runs of whitespace collapse to a single space.
func capitalizeWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

package parser

import "regexp"

// repairStrategy is one best-effort text rewrite applied to near-valid JSON
// before a re-parse. Strategies are tried in order and the attempted names
// are recorded in failure diagnostics, so a total failure is debuggable
// rather than opaque.
type repairStrategy struct {
	name  string
	apply func(string) string
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	singleQuoteRe   = regexp.MustCompile(`'([^'\\]*)'`)
	barewordKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// repairStrategies is the ordered fallback chain. Each rewrite is lossy on
// pathological input, which is acceptable: they only run after direct
// parsing has already failed.
var repairStrategies = []repairStrategy{
	{
		name: "strip_trailing_commas",
		apply: func(s string) string {
			return trailingCommaRe.ReplaceAllString(s, "$1")
		},
	},
	{
		name: "normalize_single_quotes",
		apply: func(s string) string {
			return singleQuoteRe.ReplaceAllString(s, `"$1"`)
		},
	},
	{
		name: "quote_bareword_keys",
		apply: func(s string) string {
			return barewordKeyRe.ReplaceAllString(s, `$1"$2":`)
		},
	},
}

// FixCommonIssues applies the full repair chain to a JSON-like string. It is
// a best-effort rewrite, not a grammar-aware repair; callers must be prepared
// for the result to still be unparseable.
func FixCommonIssues(s string) string {
	for _, strategy := range repairStrategies {
		s = strategy.apply(s)
	}
	return s
}

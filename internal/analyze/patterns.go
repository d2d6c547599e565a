package analyze

import "regexp"

// Rule pairs a stable name with a compiled matcher so that each pattern's
// contribution to a metric can be exercised in isolation.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

func newRule(name, expr string) Rule {
	return Rule{Name: name, re: regexp.MustCompile(expr)}
}

// Match reports whether the rule fires anywhere in s.
func (r Rule) Match(s string) bool {
	return r.re.MatchString(s)
}

// Count returns the number of non-overlapping matches in s.
func (r Rule) Count(s string) int {
	return len(r.re.FindAllStringIndex(s, -1))
}

// ClaimRules are the fact-indicating patterns used for claim density. A
// sentence may fire several rules and each firing counts once; the scoring
// constants are tuned against that overcounting, so it is kept.
var ClaimRules = []Rule{
	newRule("percentage", `\d+%`),
	newRule("currency", `\$[\d,]+`),
	newRule("quantified-noun", `(?i)\d+\s*(users|customers|companies|people)`),
	newRule("quantified-change", `(?i)(increases?|decreases?|improves?|reduces?)\s+by\s+\d+`),
	newRule("comparative", `(?i)(more|less|faster|slower)\s+than`),
}

// DateRules detect temporal context. A sentence counts once no matter how
// many rules fire.
var DateRules = []Rule{
	newRule("year", `\d{4}`),
	newRule("month-name", `(?i)(january|february|march|april|may|june|july|august|september|october|november|december)`),
	newRule("relative-time", `(?i)(today|yesterday|tomorrow|recently|currently|now)`),
	newRule("time-ago", `(?i)\d+\s+(days?|weeks?|months?|years?)\s+ago`),
}

// FrontloadClaimRules is the claim set used for the frontloading windows and
// first-claim position. It swaps the comparative rule for unit measurements.
var FrontloadClaimRules = []Rule{
	newRule("percentage", `\d+%`),
	newRule("currency", `\$[\d,]+`),
	newRule("measurement", `(?i)\d+\s*(nm|kg|mm|hz|gb|mb|tb)`),
	newRule("quantified-noun", `(?i)\d+\s*(users|customers|companies|people)`),
	newRule("quantified-change", `(?i)(increases?|decreases?|improves?|reduces?)\s+by\s+\d+`),
}

// EntityRules approximate named-entity mentions without any NLP: capitalized
// multi-word phrases, acronyms of two or more capitals, and number+unit
// measurements. The first two must stay case-sensitive: under (?i) they
// would match any multi-word run and any 2+ letter word, and the
// capitalization requirement is the entire signal.
var EntityRules = []Rule{
	newRule("proper-noun-phrase", `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`),
	newRule("acronym", `[A-Z]{2,}`),
	newRule("measurement", `(?i)\d+\s*(nm|kg|mm|hz|gb|mb|tb)`),
}

// countRuleMatches sums non-overlapping matches of every rule over text.
func countRuleMatches(rules []Rule, text string) int {
	total := 0
	for _, r := range rules {
		total += r.Count(text)
	}
	return total
}

// anyRuleMatches reports whether at least one rule fires in text.
func anyRuleMatches(rules []Rule, text string) bool {
	for _, r := range rules {
		if r.Match(text) {
			return true
		}
	}
	return false
}

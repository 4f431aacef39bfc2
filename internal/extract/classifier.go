package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the class a card line is assigned to.
type Category string

const (
	CategoryContact      Category = "contact" // carries an email or phone match
	CategoryDesignation  Category = "designation"
	CategoryCompany      Category = "company"
	CategoryAddress      Category = "address"
	CategoryName         Category = "name"
	CategoryUnclassified Category = "unclassified"
)

const (
	maxNameTokens           = 4
	minNameRunes            = 3
	maxFallbackCompanyWords = 3
	maxResidualCompanyWords = 4
)

// Line is a card line with the derived facts the rules look at.
type Line struct {
	Text   string
	Lower  string
	Tokens int
	Runes  int
}

func newLine(text string) Line {
	return Line{
		Text:   text,
		Lower:  strings.ToLower(text),
		Tokens: len(strings.Fields(text)),
		Runes:  utf8.RuneCountInString(text),
	}
}

// Rule assigns Category to every line Match accepts.
type Rule struct {
	Name     string
	Category Category
	Match    func(Line) bool
}

// Classification is the per-line outcome of running the rule table.
// Assigned[i] is the category of Lines[i].
type Classification struct {
	Lines    []string
	Assigned []Category
}

// Candidates returns the lines assigned to cat in document order.
func (c Classification) Candidates(cat Category) []string {
	var out []string
	for i, a := range c.Assigned {
		if a == cat {
			out = append(out, c.Lines[i])
		}
	}
	return out
}

func (c Classification) firstIndex(cat Category) int {
	for i, a := range c.Assigned {
		if a == cat {
			return i
		}
	}
	return -1
}

// buildRules returns the classification rules in priority order.
func buildRules(v Vocabulary, longLine int, contains keywordMatcher) []Rule {
	return []Rule{
		{
			Name:     "designation_keyword",
			Category: CategoryDesignation,
			Match:    func(l Line) bool { return contains(l.Lower, v.Designation) },
		},
		{
			Name:     "company_keyword",
			Category: CategoryCompany,
			Match:    func(l Line) bool { return contains(l.Lower, v.Company) },
		},
		{
			Name:     "address",
			Category: CategoryAddress,
			Match: func(l Line) bool {
				if contains(l.Lower, v.Address) || hasDigit(l.Text) {
					return true
				}
				return longLine > 0 && l.Runes > longLine
			},
		},
		{
			Name:     "name_shape",
			Category: CategoryName,
			Match: func(l Line) bool {
				return l.Tokens <= maxNameTokens && l.Runes >= minNameRunes &&
					hasUpper(l.Text) && !isAllUpper(l.Text)
			},
		},
		{
			Name:     "all_caps_company",
			Category: CategoryCompany,
			Match: func(l Line) bool {
				return l.Tokens <= maxFallbackCompanyWords && isAllUpper(l.Text)
			},
		},
	}
}

func classifyLine(rules []Rule, line string) Category {
	if HasContactPattern(line) {
		return CategoryContact
	}
	l := newLine(line)
	for _, r := range rules {
		if r.Match(l) {
			return r.Category
		}
	}
	return CategoryUnclassified
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

// isAllUpper is true when s has at least one uppercase letter and no lowercase ones.
func isAllUpper(s string) bool {
	sawUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			sawUpper = true
		}
	}
	return sawUpper
}

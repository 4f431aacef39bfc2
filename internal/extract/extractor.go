package extract

import (
	"strings"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

const (
	// AddressDelimiter joins multi-line addresses.
	AddressDelimiter = " | "
	// MaxAddressLines bounds how many address lines are joined.
	MaxAddressLines = 3
	// DefaultLongLineThreshold is the rune length above which a line is taken as an address.
	DefaultLongLineThreshold = 30
)

// Extractor turns OCR text into a ContactRecord. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	vocab    Vocabulary
	longLine int
	contains keywordMatcher
	rules    []Rule
}

type Option func(*Extractor)

// WithLongLineThreshold sets the rune length above which an otherwise
// unmatched line is classified as address. n <= 0 disables the policy.
func WithLongLineThreshold(n int) Option {
	return func(e *Extractor) {
		if n < 0 {
			n = 0
		}
		e.longLine = n
	}
}

// WithWordStartKeywords restricts keyword matches to the start of a word,
// so "tech" matches "Technologies" but not "Infotech".
func WithWordStartKeywords() Option {
	return func(e *Extractor) {
		e.contains = containsAtWordStart
	}
}

func NewExtractor(vocab Vocabulary, opts ...Option) *Extractor {
	e := &Extractor{
		vocab:    vocab.normalized(),
		longLine: DefaultLongLineThreshold,
		contains: containsAny,
	}
	for _, o := range opts {
		o(e)
	}
	e.rules = buildRules(e.vocab, e.longLine, e.contains)
	return e
}

// Rules returns the classification rules in the order they are evaluated.
func (e *Extractor) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Classify assigns every non-empty line of text to exactly one category.
func (e *Extractor) Classify(text string) Classification {
	lines := SplitLines(text)
	assigned := make([]Category, len(lines))
	for i, l := range lines {
		assigned[i] = classifyLine(e.rules, l)
	}
	return Classification{Lines: lines, Assigned: assigned}
}

// Extract returns the most likely contact fields found in text.
// It never fails: fields without a candidate are left empty.
func (e *Extractor) Extract(text string) entity.ContactRecord {
	c := e.Classify(text)

	rec := entity.ContactRecord{
		Email:       first(FindEmails(text)),
		Phone:       first(FindPhones(text)),
		Designation: first(c.Candidates(CategoryDesignation)),
		Address:     joinAddress(c.Candidates(CategoryAddress)),
	}

	nameIdx := e.selectName(c)
	if nameIdx >= 0 {
		rec.Name = c.Lines[nameIdx]
	}

	if company := first(c.Candidates(CategoryCompany)); company != "" {
		rec.Company = company
	} else {
		rec.Company = e.residualCompany(c, nameIdx)
	}

	return rec.Trimmed()
}

// selectName returns the index of the chosen name line or -1.
func (e *Extractor) selectName(c Classification) int {
	if i := c.firstIndex(CategoryName); i >= 0 {
		return i
	}
	if len(c.Lines) == 0 || c.Assigned[0] == CategoryContact {
		return -1
	}
	// a masthead carrying a company keyword is not a person
	if e.contains(strings.ToLower(c.Lines[0]), e.vocab.Company) {
		return -1
	}
	return 0
}

// residualCompany guesses a company from lines no other field claimed.
func (e *Extractor) residualCompany(c Classification, nameIdx int) string {
	for i, l := range c.Lines {
		if i == nameIdx {
			continue
		}
		switch c.Assigned[i] {
		case CategoryContact, CategoryDesignation, CategoryAddress:
			continue
		}
		if len(strings.Fields(l)) > maxResidualCompanyWords {
			continue
		}
		if e.contains(strings.ToLower(l), e.vocab.Address) {
			continue
		}
		return l
	}
	return ""
}

func joinAddress(candidates []string) string {
	if len(candidates) > MaxAddressLines {
		candidates = candidates[:MaxAddressLines]
	}
	return strings.Join(candidates, AddressDelimiter)
}

package extract

import (
	"regexp"

	"github.com/joseph-ayodele/visiting-cards/constants"
)

var (
	emailPattern = regexp.MustCompile(constants.EmailPattern)
	// optional +country code, optional (area) group, then two 3-4 digit groups
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?(?:\d{3}|\d{4})\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`)
)

// FindEmails returns every non-overlapping email match in document order.
func FindEmails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// FindPhones returns every non-overlapping phone match in document order.
func FindPhones(text string) []string {
	return phonePattern.FindAllString(text, -1)
}

// HasContactPattern reports whether line carries an email or phone match.
func HasContactPattern(line string) bool {
	return emailPattern.MatchString(line) || phonePattern.MatchString(line)
}

func first(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}

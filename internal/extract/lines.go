package extract

import "strings"

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines returns the non-empty lines of text in document order,
// each trimmed of surrounding whitespace.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	raw := strings.Split(lineBreaks.Replace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

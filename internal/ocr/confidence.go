package ocr

import (
	"regexp"
	"strings"
)

// Loose shapes only; the field extractor owns the exact patterns.
var (
	reEmailish = regexp.MustCompile(`\S+@\S+\.\w+`)
	rePhoneish = regexp.MustCompile(`(?:\d[\s().-]?){7,}`)
	reWordish  = regexp.MustCompile(`[A-Za-z]{3,}`)
)

// heuristicConfidence scores how much the text looks like a business card.
func heuristicConfidence(txt string) float32 {
	score := float32(0.2) // base
	if strings.TrimSpace(txt) == "" {
		return 0
	}
	if reEmailish.MatchString(txt) {
		score += 0.25
	}
	if rePhoneish.MatchString(txt) {
		score += 0.25
	}
	lines := 0
	for _, ln := range strings.Split(txt, "\n") {
		if reWordish.MatchString(ln) {
			lines++
		}
	}
	if lines >= 3 {
		score += 0.15
	}
	if len(txt) > 60 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}

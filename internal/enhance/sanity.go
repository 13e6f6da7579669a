package enhance

import (
	"fmt"
	"regexp"
	"strings"
)

// numeralRe matches numeric metrics: integers, decimals, and percentages.
var numeralRe = regexp.MustCompile(`\d+(?:[.,]\d+)?%?`)

// minLengthRatio is how much shorter a rewrite may be before it is treated
// as having dropped content.
const minLengthRatio = 0.5

// checkRewrite decides whether a rewritten bullet is usable. It rejects
// empty output, output drastically shorter than the original, and output
// that lost any numeric metric the original carried.
func checkRewrite(original, rewritten string) error {
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return fmt.Errorf("rewrite is empty")
	}
	if float64(len(rewritten)) < float64(len(original))*minLengthRatio {
		return fmt.Errorf("rewrite is drastically shorter (%d chars vs %d)", len(rewritten), len(original))
	}
	for _, numeral := range numeralRe.FindAllString(original, -1) {
		if !strings.Contains(rewritten, numeral) {
			return fmt.Errorf("rewrite dropped metric %q", numeral)
		}
	}
	return nil
}

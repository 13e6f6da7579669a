package extraction

import (
	"encoding/json"
	"regexp"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// keywordObjectRe matches candidate keyword objects inside an otherwise
// broken payload. Objects are flat, so a non-greedy brace pair is enough.
var keywordObjectRe = regexp.MustCompile(`\{[^{}]*"keyword"[^{}]*\}`)

// salvageKeywords recovers whatever well-formed keyword objects survive in a
// payload that failed whole-document decoding. Objects that still fail to
// decode individually are skipped.
func salvageKeywords(raw string) []types.JobKeyword {
	var salvaged []types.JobKeyword
	for _, candidate := range keywordObjectRe.FindAllString(raw, -1) {
		candidate = llm.StripTrailingCommas(candidate)
		var kw types.JobKeyword
		if err := json.Unmarshal([]byte(candidate), &kw); err != nil {
			continue
		}
		if kw.Keyword == "" || kw.Context == "" {
			continue
		}
		salvaged = append(salvaged, kw)
	}
	return salvaged
}

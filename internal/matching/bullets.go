package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// bulletEntry pairs a bullet's text with its position in the document.
type bulletEntry struct {
	ref  types.BulletRef
	text string
}

// collectBullets gathers every experience bullet in document order,
// preserving identity for later rewriting.
func collectBullets(resume *types.ResumeDocument) []bulletEntry {
	var entries []bulletEntry
	for ei, exp := range resume.Experience {
		for bi, text := range exp.Bullets {
			entries = append(entries, bulletEntry{
				ref: types.BulletRef{
					ExperienceIndex: ei,
					BulletIndex:     bi,
					Company:         exp.Company,
					Title:           exp.Title,
				},
				text: text,
			})
		}
	}
	return entries
}

// capMatches sorts candidate matches by descending similarity (stable, so
// earlier keywords win ties) and applies the per-bullet cap: at most maxTotal
// keywords, of which at most one may be a soft skill.
func capMatches(candidates []types.KeywordMatch, maxTotal int) []types.KeywordMatch {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	maxHard := maxTotal - 1
	if maxHard < 1 {
		maxHard = maxTotal
	}

	var kept []types.KeywordMatch
	hard, soft := 0, 0
	for _, c := range candidates {
		if len(kept) >= maxTotal {
			break
		}
		if c.Soft {
			if soft >= 1 {
				continue
			}
			soft++
		} else {
			if hard >= maxHard {
				continue
			}
			hard++
		}
		kept = append(kept, c)
	}
	return kept
}

// keywordInBullet reports whether the keyword already appears verbatim in
// the bullet text, in which case rewriting it in adds nothing.
func keywordInBullet(keyword, bullet string) bool {
	return strings.Contains(strings.ToLower(bullet), strings.ToLower(keyword))
}

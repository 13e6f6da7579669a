package enhance

import (
	"sort"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// applyKeywordBudget limits how many bullets any single keyword may be
// assigned to across the whole resume. When a keyword exceeds the budget,
// its highest-similarity assignments are kept and the rest dropped. Bullet
// order and within-bullet keyword order are preserved.
func applyKeywordBudget(matches []types.BulletMatches, maxUses int) []types.BulletMatches {
	if maxUses <= 0 {
		return nil
	}

	type site struct {
		bullet, pos int
		similarity  float64
	}
	sites := make(map[string][]site)
	for bi, bm := range matches {
		for pi, kwm := range bm.Keywords {
			sites[kwm.Keyword] = append(sites[kwm.Keyword], site{bullet: bi, pos: pi, similarity: kwm.Similarity})
		}
	}

	// For each over-budget keyword, mark the assignments that lose.
	drop := make(map[[2]int]bool)
	for _, s := range sites {
		if len(s) <= maxUses {
			continue
		}
		ranked := append([]site(nil), s...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].similarity > ranked[j].similarity
		})
		for _, loser := range ranked[maxUses:] {
			drop[[2]int{loser.bullet, loser.pos}] = true
		}
	}

	filtered := make([]types.BulletMatches, 0, len(matches))
	for bi, bm := range matches {
		kept := make([]types.KeywordMatch, 0, len(bm.Keywords))
		for pi, kwm := range bm.Keywords {
			if drop[[2]int{bi, pi}] {
				continue
			}
			kept = append(kept, kwm)
		}
		if len(kept) == 0 {
			continue
		}
		filtered = append(filtered, types.BulletMatches{Ref: bm.Ref, Text: bm.Text, Keywords: kept})
	}
	return filtered
}

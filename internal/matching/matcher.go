// Package matching implements the semantic core: keyword deduplication,
// bullet-keyword relevance via embeddings, and bounded skill selection.
package matching

import (
	"context"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Matcher runs the matching stage over extracted keywords and a parsed
// resume. It is a pure function over its inputs: it never mutates the resume.
type Matcher struct {
	emb *embedding.Client
	llm llm.Client
	cfg config.Config
}

// NewMatcher creates a Matcher. The LLM client may be nil, in which case
// ambiguous skill categorization falls back to the default category.
func NewMatcher(emb *embedding.Client, client llm.Client, cfg config.Config) *Matcher {
	return &Matcher{emb: emb, llm: client, cfg: cfg}
}

// Match deduplicates keywords, assigns them to resume bullets by embedding
// similarity, and selects the final bounded skill set.
func (m *Matcher) Match(ctx context.Context, keywords []types.JobKeyword, resume *types.ResumeDocument) (*types.MatchResult, error) {
	clusters, err := dedupKeywords(ctx, m.emb, keywords, m.cfg.DedupThreshold)
	if err != nil {
		return nil, &Error{Message: "keyword deduplication", Cause: err}
	}

	entries := collectBullets(resume)

	bullets, dropped, err := m.matchBullets(ctx, clusters, entries)
	if err != nil {
		return nil, &Error{Message: "bullet matching", Cause: err}
	}

	skills, err := m.selectSkills(ctx, clusters, resume.Skills.Technical)
	if err != nil {
		return nil, &Error{Message: "skill selection", Cause: err}
	}

	assignments := 0
	for _, b := range bullets {
		assignments += len(b.Keywords)
	}

	return &types.MatchResult{
		Clusters: clusters,
		Bullets:  bullets,
		Skills:   skills,
		Stats: types.MatchStats{
			KeywordsExtracted:  len(keywords),
			KeywordsDeduped:    len(clusters),
			BulletsConsidered:  len(entries),
			BulletsMatched:     len(bullets),
			AssignmentsTotal:   assignments,
			AssignmentsDropped: dropped,
			SkillsSelected:     skills.Groups.TotalSkills(),
		},
	}, nil
}

// matchBullets embeds every bullet and scores it against every cluster
// representative. Only bullets with at least one keyword at or above the
// match threshold appear in the result. Keywords already present verbatim in
// a bullet are skipped for that bullet.
func (m *Matcher) matchBullets(ctx context.Context, clusters []types.KeywordCluster, entries []bulletEntry) ([]types.BulletMatches, int, error) {
	if len(clusters) == 0 || len(entries) == 0 {
		return nil, 0, nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.text
	}
	bulletVecs, err := m.emb.Embed(ctx, texts)
	if err != nil {
		return nil, 0, err
	}

	// Representative embeddings were computed during dedup; the cache
	// makes this a lookup, not a second upstream call.
	repTexts := make([]string, len(clusters))
	for i, cl := range clusters {
		repTexts[i] = keywordText(cl.Representative)
	}
	repVecs, err := m.emb.Embed(ctx, repTexts)
	if err != nil {
		return nil, 0, err
	}

	var results []types.BulletMatches
	dropped := 0
	for i, entry := range entries {
		var candidates []types.KeywordMatch
		for j, cl := range clusters {
			kw := cl.Representative
			if keywordInBullet(kw.Keyword, entry.text) {
				continue
			}
			sim := embedding.CosineSimilarity(bulletVecs[i], repVecs[j])
			if sim < m.cfg.MatchThreshold {
				continue
			}
			candidates = append(candidates, types.KeywordMatch{
				Keyword:    kw.Keyword,
				SkillType:  kw.SkillType,
				Relevance:  kw.RelevanceScore,
				Similarity: sim,
				Soft:       kw.SkillType == "soft skill",
			})
		}
		if len(candidates) == 0 {
			continue
		}
		kept := capMatches(candidates, m.cfg.MaxPerBullet)
		dropped += len(candidates) - len(kept)
		results = append(results, types.BulletMatches{
			Ref:      entry.ref,
			Text:     entry.text,
			Keywords: kept,
		})
	}
	return results, dropped, nil
}

// selectSkills merges resume-declared skills with job-derived hard skills
// and enforces the global cap.
func (m *Matcher) selectSkills(ctx context.Context, clusters []types.KeywordCluster, groups types.SkillGroups) (types.SkillSelection, error) {
	existing := existingSkillSet(groups)
	candidates := hardSkillCandidates(clusters, existing, m.cfg.RelevanceThreshold)

	candidates, err := filterNearDuplicates(ctx, m.emb, candidates, groups, m.cfg.SkillThreshold)
	if err != nil {
		return types.SkillSelection{}, err
	}

	cat := &categorizer{emb: m.emb, llm: m.llm, confidence: m.cfg.CategoryConfidence}
	assignments, categoryOrder, err := cat.assign(ctx, candidates, groups)
	if err != nil {
		return types.SkillSelection{}, err
	}

	byCategory := make(map[string][]string)
	added := make([]string, 0, len(assignments))
	for _, a := range assignments {
		byCategory[a.category] = append(byCategory[a.category], a.skill)
		added = append(added, a.skill)
	}

	merged := mergeSkills(groups, byCategory, categoryOrder)
	final := RoundRobinSelect(merged, m.cfg.SkillLimit)

	return types.SkillSelection{Groups: final, Added: added}, nil
}

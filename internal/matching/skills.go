package matching

import (
	"context"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// existingSkillSet returns the lowercase set of skills already declared on
// the resume, across all technical categories.
func existingSkillSet(groups types.SkillGroups) map[string]bool {
	set := make(map[string]bool)
	for _, cat := range groups {
		for _, skill := range cat.Skills {
			set[strings.ToLower(strings.TrimSpace(skill))] = true
		}
	}
	return set
}

// hardSkillCandidates filters cluster representatives down to the hard
// skills worth adding to the skills section: tagged "hard skill", relevant
// enough, and not already declared on the resume.
func hardSkillCandidates(clusters []types.KeywordCluster, existing map[string]bool, minRelevance float64) []types.JobKeyword {
	var candidates []types.JobKeyword
	for _, cluster := range clusters {
		kw := cluster.Representative
		if !kw.IsHardSkill() {
			continue
		}
		if kw.RelevanceScore < minRelevance {
			continue
		}
		if existing[strings.ToLower(strings.TrimSpace(kw.Keyword))] {
			continue
		}
		candidates = append(candidates, kw)
	}
	return candidates
}

// filterNearDuplicates drops candidates whose name embeds too close to a
// skill already declared on the resume or to an earlier-kept candidate
// ("Postgres" next to "PostgreSQL"). Exact matches were already removed by
// existingSkillSet; this catches spelling variants of the same skill.
func filterNearDuplicates(ctx context.Context, emb *embedding.Client, candidates []types.JobKeyword, groups types.SkillGroups, threshold float64) ([]types.JobKeyword, error) {
	if threshold <= 0 || len(candidates) == 0 {
		return candidates, nil
	}

	var declared []string
	for _, cat := range groups {
		for _, skill := range cat.Skills {
			if s := strings.TrimSpace(skill); s != "" {
				declared = append(declared, s)
			}
		}
	}

	texts := make([]string, 0, len(declared)+len(candidates))
	texts = append(texts, declared...)
	for _, kw := range candidates {
		texts = append(texts, kw.Keyword)
	}
	vectors, err := emb.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	keptVectors := vectors[:len(declared):len(declared)]
	var kept []types.JobKeyword
	for i, kw := range candidates {
		vec := vectors[len(declared)+i]
		duplicate := false
		for _, other := range keptVectors {
			if embedding.CosineSimilarity(vec, other) >= threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, kw)
		keptVectors = append(keptVectors, vec)
	}
	return kept, nil
}

// mergeSkills appends new skills to their assigned categories, deduplicating
// case-insensitively and preserving first occurrence. Categories keep their
// first-seen order; categories introduced by assignments are appended after
// the resume's own.
func mergeSkills(groups types.SkillGroups, assignments map[string][]string, categoryOrder []string) types.SkillGroups {
	merged := make(types.SkillGroups, 0, len(groups))
	seen := make(map[string]bool)

	appendSkills := func(dst []string, skills []string) []string {
		for _, s := range skills {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			dst = append(dst, s)
		}
		return dst
	}

	for _, cat := range groups {
		skills := appendSkills(nil, cat.Skills)
		skills = appendSkills(skills, assignments[cat.Name])
		merged = append(merged, types.SkillCategory{Name: cat.Name, Skills: skills})
	}

	for _, name := range categoryOrder {
		if _, exists := groups.Category(name); exists {
			continue
		}
		skills := appendSkills(nil, assignments[name])
		if len(skills) > 0 {
			merged = append(merged, types.SkillCategory{Name: name, Skills: skills})
		}
	}
	return merged
}

package matching

import (
	"context"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// categoryText is the text embedded for a category: the name anchored by its
// member skills so that sparse category names still embed meaningfully.
func categoryText(cat types.SkillCategory) string {
	if len(cat.Skills) == 0 {
		return cat.Name
	}
	return cat.Name + ": " + strings.Join(cat.Skills, ", ")
}

// categorizer assigns new hard-skill keywords to resume skill categories.
// Embedding similarity decides when it is confident; otherwise the model is
// asked. Any failure degrades to the default category rather than aborting.
type categorizer struct {
	emb        *embedding.Client
	llm        llm.Client
	confidence float64
}

// assignment is one categorized skill.
type assignment struct {
	skill    string
	category string
}

// assign returns a category for each candidate, in candidate order, along
// with the order in which previously-unseen categories were introduced.
func (c *categorizer) assign(ctx context.Context, candidates []types.JobKeyword, groups types.SkillGroups) ([]assignment, []string, error) {
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	knownOrder := append([]string(nil), groups.CategoryNames()...)
	known := make(map[string]string) // lowercase name -> canonical name
	for _, name := range knownOrder {
		known[strings.ToLower(name)] = name
	}

	catVectors, err := c.embedCategories(ctx, groups)
	if err != nil {
		return nil, nil, err
	}

	texts := make([]string, len(candidates))
	for i, kw := range candidates {
		texts[i] = keywordText(kw)
	}
	skillVectors, err := c.emb.Embed(ctx, texts)
	if err != nil {
		return nil, nil, err
	}

	assignments := make([]assignment, 0, len(candidates))
	for i, kw := range candidates {
		category := c.pickCategory(ctx, kw, skillVectors[i], groups, catVectors)

		canonical, exists := known[strings.ToLower(category)]
		if !exists {
			canonical = category
			known[strings.ToLower(category)] = category
			knownOrder = append(knownOrder, category)
		}
		assignments = append(assignments, assignment{skill: kw.Keyword, category: canonical})
	}
	return assignments, knownOrder, nil
}

func (c *categorizer) embedCategories(ctx context.Context, groups types.SkillGroups) ([][]float32, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	texts := make([]string, len(groups))
	for i, cat := range groups {
		texts[i] = categoryText(cat)
	}
	return c.emb.Embed(ctx, texts)
}

// pickCategory chooses by embedding similarity when confident, and falls
// back to asking the model, then to the default category.
func (c *categorizer) pickCategory(ctx context.Context, kw types.JobKeyword, skillVec []float32, groups types.SkillGroups, catVectors [][]float32) string {
	bestIdx, bestSim := -1, 0.0
	for i := range catVectors {
		sim := embedding.CosineSimilarity(skillVec, catVectors[i])
		if sim > bestSim {
			bestIdx, bestSim = i, sim
		}
	}

	if bestIdx >= 0 && bestSim >= c.confidence {
		return groups[bestIdx].Name
	}

	if name := c.askModel(ctx, kw, groups); name != "" {
		return name
	}
	return types.DefaultCategory
}

// askModel asks the LLM which category fits. It returns "" on any failure
// or unusable response.
func (c *categorizer) askModel(ctx context.Context, kw types.JobKeyword, groups types.SkillGroups) string {
	if c.llm == nil {
		return ""
	}

	prompt := prompts.Format(prompts.MustGet("matching.json", "categorize-skill"), map[string]string{
		"Skill":      kw.Keyword,
		"Context":    kw.Context,
		"Categories": strings.Join(groups.CategoryNames(), ", "),
	})

	resp, err := c.llm.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return ""
	}

	answer := strings.TrimSpace(strings.Trim(strings.TrimSpace(resp), `'"`))
	if answer == "" {
		return ""
	}

	if rest, ok := cutPrefixFold(answer, "new category:"); ok {
		name := strings.TrimSpace(strings.Trim(rest, `[]'"`))
		if name != "" {
			return name
		}
		return ""
	}

	// Accept only answers naming an existing category.
	for _, name := range groups.CategoryNames() {
		if strings.EqualFold(answer, name) {
			return name
		}
	}
	return ""
}

// cutPrefixFold is strings.CutPrefix with ASCII case folding.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) {
		return s, false
	}
	if strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

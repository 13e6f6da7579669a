package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// mapEmbedder implements llm.Embedder with a fixed text-to-vector table.
// Unknown texts embed to a far-away direction so they match nothing.
type mapEmbedder struct {
	vectors map[string][]float32
}

func (m *mapEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if vec, ok := m.vectors[t]; ok {
			out[i] = vec
			continue
		}
		out[i] = []float32{0, 0, 0, 1}
	}
	return out, nil
}

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func testConfig() config.Config {
	return config.Defaults()
}

func kw(keyword, context string, relevance float64, skillType string) types.JobKeyword {
	return types.JobKeyword{
		Keyword:        keyword,
		Context:        context,
		RelevanceScore: relevance,
		SkillType:      skillType,
	}
}

func TestDedupKeywords_ClustersNearDuplicates(t *testing.T) {
	python := kw("Python", "Python developer", 0.8, "hard skill")
	pythonProg := kw("Python programming", "experience with Python programming", 0.9, "hard skill")
	docker := kw("Docker", "Docker experience", 0.7, "hard skill")

	emb := embedding.NewClient(&mapEmbedder{vectors: map[string][]float32{
		keywordText(python):     {1, 0, 0, 0},
		keywordText(pythonProg): {0.99, 0.01, 0, 0},
		keywordText(docker):     {0, 1, 0, 0},
	}})

	clusters, err := dedupKeywords(context.Background(), emb, []types.JobKeyword{python, pythonProg, docker}, 0.92)
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	assert.Equal(t, "Python programming", clusters[0].Representative.Keyword, "highest relevance wins the cluster")
	require.Len(t, clusters[0].Synonyms, 1)
	assert.Equal(t, "Python", clusters[0].Synonyms[0].Keyword)
	assert.Equal(t, "Docker", clusters[1].Representative.Keyword)
}

func TestDedupKeywords_TieBreakPrefersLonger(t *testing.T) {
	short := kw("Go", "Go services", 0.8, "hard skill")
	long := kw("Go programming", "Go programming experience", 0.8, "hard skill")

	emb := embedding.NewClient(&mapEmbedder{vectors: map[string][]float32{
		keywordText(short): {1, 0, 0, 0},
		keywordText(long):  {0.99, 0.01, 0, 0},
	}})

	clusters, err := dedupKeywords(context.Background(), emb, []types.JobKeyword{short, long}, 0.92)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, "Go programming", clusters[0].Representative.Keyword)
}

func TestDedupKeywords_Idempotent(t *testing.T) {
	a := kw("Python", "Python developer", 0.9, "hard skill")
	b := kw("Python programming", "Python programming skills", 0.7, "hard skill")
	c := kw("Kubernetes", "Kubernetes clusters", 0.8, "tool")

	emb := embedding.NewClient(&mapEmbedder{vectors: map[string][]float32{
		keywordText(a): {1, 0, 0, 0},
		keywordText(b): {0.99, 0.01, 0, 0},
		keywordText(c): {0, 1, 0, 0},
	}})

	first, err := dedupKeywords(context.Background(), emb, []types.JobKeyword{a, b, c}, 0.92)
	require.NoError(t, err)

	reps := make([]types.JobKeyword, len(first))
	for i, cl := range first {
		reps[i] = cl.Representative
	}

	second, err := dedupKeywords(context.Background(), emb, reps, 0.92)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range second {
		assert.Equal(t, first[i].Representative, second[i].Representative)
	}
}

func TestDedupKeywords_Empty(t *testing.T) {
	emb := embedding.NewClient(&mapEmbedder{})
	clusters, err := dedupKeywords(context.Background(), emb, nil, 0.92)
	require.NoError(t, err)
	assert.Empty(t, clusters)
}

func TestCapMatches_PerBulletCap(t *testing.T) {
	candidates := []types.KeywordMatch{
		{Keyword: "Go", Similarity: 0.95},
		{Keyword: "Kubernetes", Similarity: 0.9},
		{Keyword: "Docker", Similarity: 0.85},
		{Keyword: "Terraform", Similarity: 0.8},
	}

	kept := capMatches(candidates, 3)
	require.Len(t, kept, 3)
	assert.Equal(t, "Go", kept[0].Keyword)
	assert.Equal(t, "Kubernetes", kept[1].Keyword)
	assert.Equal(t, "Docker", kept[2].Keyword)
}

func TestCapMatches_AtMostOneSoftSkill(t *testing.T) {
	candidates := []types.KeywordMatch{
		{Keyword: "communication", Similarity: 0.95, Soft: true},
		{Keyword: "leadership", Similarity: 0.9, Soft: true},
		{Keyword: "Go", Similarity: 0.85},
		{Keyword: "Docker", Similarity: 0.8},
	}

	kept := capMatches(candidates, 3)
	require.Len(t, kept, 3)
	assert.Equal(t, "communication", kept[0].Keyword)
	assert.Equal(t, "Go", kept[1].Keyword)
	assert.Equal(t, "Docker", kept[2].Keyword)
}

func TestCollectBullets(t *testing.T) {
	resume := &types.ResumeDocument{
		Experience: []types.Experience{
			{Company: "Acme", Title: "Engineer", Bullets: []string{"first", "second"}},
			{Company: "Globex", Title: "Lead", Bullets: []string{"third"}},
		},
	}

	entries := collectBullets(resume)
	require.Len(t, entries, 3)
	assert.Equal(t, types.BulletRef{ExperienceIndex: 0, BulletIndex: 1, Company: "Acme", Title: "Engineer"}, entries[1].ref)
	assert.Equal(t, "third", entries[2].text)
}

func TestMatch_ThresholdFilters(t *testing.T) {
	python := kw("Python", "Looking for a Python developer", 0.9, "hard skill")
	docker := kw("Docker", "with Docker experience", 0.8, "hard skill")
	bullet := "Built deployment scripts for cloud infrastructure"

	emb := embedding.NewClient(&mapEmbedder{vectors: map[string][]float32{
		keywordText(python): {1, 0, 0, 0},
		keywordText(docker): {0, 1, 0, 0},
		// The bullet is about deployment, close to Docker and far from Python.
		bullet: {0.1, 0.9, 0, 0},
	}})

	resume := &types.ResumeDocument{
		Experience: []types.Experience{
			{Company: "Acme", Title: "Engineer", Bullets: []string{bullet}},
		},
	}

	matcher := NewMatcher(emb, nil, testConfig())
	result, err := matcher.Match(context.Background(), []types.JobKeyword{python, docker}, resume)
	require.NoError(t, err)

	require.Len(t, result.Bullets, 1)
	require.Len(t, result.Bullets[0].Keywords, 1)
	assert.Equal(t, "Docker", result.Bullets[0].Keywords[0].Keyword)
	assert.GreaterOrEqual(t, result.Bullets[0].Keywords[0].Similarity, 0.75)

	assert.Equal(t, 2, result.Stats.KeywordsExtracted)
	assert.Equal(t, 2, result.Stats.KeywordsDeduped)
	assert.Equal(t, 1, result.Stats.BulletsConsidered)
	assert.Equal(t, 1, result.Stats.BulletsMatched)
}

func TestMatch_SkipsKeywordAlreadyInBullet(t *testing.T) {
	docker := kw("Docker", "Docker experience required", 0.8, "hard skill")
	bullet := "Containerized services with Docker for staging environments"

	emb := embedding.NewClient(&mapEmbedder{vectors: map[string][]float32{
		keywordText(docker): {0, 1, 0, 0},
		bullet:              {0, 1, 0, 0},
	}})

	resume := &types.ResumeDocument{
		Experience: []types.Experience{
			{Company: "Acme", Title: "Engineer", Bullets: []string{bullet}},
		},
	}

	matcher := NewMatcher(emb, nil, testConfig())
	result, err := matcher.Match(context.Background(), []types.JobKeyword{docker}, resume)
	require.NoError(t, err)
	assert.Empty(t, result.Bullets, "keyword already present in bullet should not be offered")
}

func TestMatch_ToolKeywordNotAddedToSkills(t *testing.T) {
	excel := kw("Excel", "reporting in Excel", 0.9, "tool")
	bullet := "Automated weekly reporting workflows"

	emb := embedding.NewClient(&mapEmbedder{vectors: map[string][]float32{
		keywordText(excel): {1, 0, 0, 0},
		bullet:             {0.95, 0.05, 0, 0},
	}})

	resume := &types.ResumeDocument{
		Skills: types.SkillsSection{
			Technical: types.SkillGroups{{Name: "Languages", Skills: []string{"Go"}}},
		},
		Experience: []types.Experience{
			{Company: "Acme", Title: "Analyst", Bullets: []string{bullet}},
		},
	}

	matcher := NewMatcher(emb, nil, testConfig())
	result, err := matcher.Match(context.Background(), []types.JobKeyword{excel}, resume)
	require.NoError(t, err)

	require.Len(t, result.Bullets, 1, "tool keywords still match bullets for rewriting")
	assert.Equal(t, "Excel", result.Bullets[0].Keywords[0].Keyword)
	assert.Empty(t, result.Skills.Added, "tools never land in the skills section")
}

func TestMatch_NoKeywords(t *testing.T) {
	emb := embedding.NewClient(&mapEmbedder{})
	resume := &types.ResumeDocument{
		Experience: []types.Experience{{Company: "Acme", Bullets: []string{"did things"}}},
	}

	matcher := NewMatcher(emb, nil, testConfig())
	result, err := matcher.Match(context.Background(), nil, resume)
	require.NoError(t, err)
	assert.Empty(t, result.Bullets)
	assert.Empty(t, result.Skills.Groups)
}

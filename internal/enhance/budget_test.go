package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/types"
)

func bm(ei, bi int, text string, kws ...types.KeywordMatch) types.BulletMatches {
	return types.BulletMatches{
		Ref:      types.BulletRef{ExperienceIndex: ei, BulletIndex: bi},
		Text:     text,
		Keywords: kws,
	}
}

func km(keyword string, similarity float64) types.KeywordMatch {
	return types.KeywordMatch{Keyword: keyword, Similarity: similarity}
}

func TestApplyKeywordBudget_UnderBudgetUntouched(t *testing.T) {
	matches := []types.BulletMatches{
		bm(0, 0, "first", km("Go", 0.9)),
		bm(0, 1, "second", km("Go", 0.8)),
	}

	filtered := applyKeywordBudget(matches, 2)
	require.Len(t, filtered, 2)
	assert.Equal(t, matches, filtered)
}

func TestApplyKeywordBudget_KeepsHighestSimilarity(t *testing.T) {
	matches := []types.BulletMatches{
		bm(0, 0, "first", km("Go", 0.8)),
		bm(0, 1, "second", km("Go", 0.95)),
		bm(1, 0, "third", km("Go", 0.9)),
	}

	filtered := applyKeywordBudget(matches, 2)
	require.Len(t, filtered, 2)
	assert.Equal(t, "second", filtered[0].Text)
	assert.Equal(t, "third", filtered[1].Text)
}

func TestApplyKeywordBudget_DropsOnlyOverBudgetKeyword(t *testing.T) {
	matches := []types.BulletMatches{
		bm(0, 0, "first", km("Go", 0.8), km("Redis", 0.85)),
		bm(0, 1, "second", km("Go", 0.95)),
		bm(1, 0, "third", km("Go", 0.9)),
	}

	filtered := applyKeywordBudget(matches, 2)
	require.Len(t, filtered, 3)
	// "Go" was dropped from the weakest bullet, but "Redis" keeps it alive.
	assert.Equal(t, []types.KeywordMatch{km("Redis", 0.85)}, filtered[0].Keywords)
	assert.Equal(t, []types.KeywordMatch{km("Go", 0.95)}, filtered[1].Keywords)
}

func TestApplyKeywordBudget_TotalUsesBounded(t *testing.T) {
	var matches []types.BulletMatches
	for i := 0; i < 10; i++ {
		matches = append(matches, bm(0, i, "bullet", km("Kubernetes", float64(i)/10)))
	}

	filtered := applyKeywordBudget(matches, 3)

	uses := 0
	for _, m := range filtered {
		for _, k := range m.Keywords {
			if k.Keyword == "Kubernetes" {
				uses++
			}
		}
	}
	assert.Equal(t, 3, uses)
}

func TestApplyKeywordBudget_ZeroBudget(t *testing.T) {
	matches := []types.BulletMatches{bm(0, 0, "first", km("Go", 0.9))}
	assert.Empty(t, applyKeywordBudget(matches, 0))
}

func TestApplyKeywordBudget_PreservesDocumentOrder(t *testing.T) {
	matches := []types.BulletMatches{
		bm(0, 0, "a", km("Go", 0.5)),
		bm(0, 1, "b", km("Go", 0.99)),
		bm(1, 0, "c", km("Go", 0.7)),
		bm(2, 0, "d", km("Go", 0.8)),
	}

	filtered := applyKeywordBudget(matches, 3)
	require.Len(t, filtered, 3)
	assert.Equal(t, "b", filtered[0].Text)
	assert.Equal(t, "c", filtered[1].Text)
	assert.Equal(t, "d", filtered[2].Text)
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobKeyword_Validation(t *testing.T) {
	tests := []struct {
		name    string
		keyword JobKeyword
		wantErr bool
	}{
		{
			name: "valid hard skill",
			keyword: JobKeyword{
				Keyword:        "Kubernetes",
				Context:        "experience with Kubernetes in production",
				RelevanceScore: 0.9,
				SkillType:      "hard skill",
			},
			wantErr: false,
		},
		{
			name: "valid soft skill",
			keyword: JobKeyword{
				Keyword:        "communication",
				Context:        "strong communication skills",
				RelevanceScore: 0.6,
				SkillType:      "soft skill",
			},
			wantErr: false,
		},
		{
			name: "valid tool",
			keyword: JobKeyword{
				Keyword:        "Terraform",
				Context:        "infrastructure as code with Terraform",
				RelevanceScore: 0.8,
				SkillType:      "tool",
			},
			wantErr: false,
		},
		{
			name: "missing keyword",
			keyword: JobKeyword{
				Context:        "some context",
				RelevanceScore: 0.5,
				SkillType:      "hard skill",
			},
			wantErr: true,
		},
		{
			name: "missing context",
			keyword: JobKeyword{
				Keyword:        "Go",
				RelevanceScore: 0.5,
				SkillType:      "hard skill",
			},
			wantErr: true,
		},
		{
			name: "relevance below minimum",
			keyword: JobKeyword{
				Keyword:        "Go",
				Context:        "Go experience",
				RelevanceScore: 0.05,
				SkillType:      "hard skill",
			},
			wantErr: true,
		},
		{
			name: "relevance above one",
			keyword: JobKeyword{
				Keyword:        "Go",
				Context:        "Go experience",
				RelevanceScore: 1.5,
				SkillType:      "hard skill",
			},
			wantErr: true,
		},
		{
			name: "unknown skill type",
			keyword: JobKeyword{
				Keyword:        "Go",
				Context:        "Go experience",
				RelevanceScore: 0.5,
				SkillType:      "magic skill",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keyword.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobKeyword_IsHardSkill(t *testing.T) {
	assert.True(t, (&JobKeyword{SkillType: "hard skill"}).IsHardSkill())
	assert.False(t, (&JobKeyword{SkillType: "tool"}).IsHardSkill())
	assert.False(t, (&JobKeyword{SkillType: "soft skill"}).IsHardSkill())
	assert.False(t, (&JobKeyword{SkillType: "qualification"}).IsHardSkill())
	assert.False(t, (&JobKeyword{SkillType: "responsibility"}).IsHardSkill())
}

func TestKeywordCluster_AllKeywords(t *testing.T) {
	cluster := KeywordCluster{
		Representative: JobKeyword{Keyword: "Kubernetes"},
		Synonyms: []JobKeyword{
			{Keyword: "k8s"},
			{Keyword: "container orchestration"},
		},
	}

	all := cluster.AllKeywords()
	assert.Len(t, all, 3)
	assert.Equal(t, "Kubernetes", all[0].Keyword)
	assert.Equal(t, "k8s", all[1].Keyword)
}

//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// JobKeyword represents a single keyword extracted from a job description,
// with the verbatim context it appeared in and a relevance score.
type JobKeyword struct {
	Keyword        string  `json:"keyword" validate:"required,min=1"`
	Context        string  `json:"context" validate:"required,min=1"`
	RelevanceScore float64 `json:"relevance_score" validate:"gte=0.1,lte=1"`
	SkillType      string  `json:"skill_type" validate:"required,oneof='hard skill' 'soft skill' qualification tool responsibility"`
}

// Validate validates the JobKeyword using the validator.
func (k *JobKeyword) Validate() error {
	validate := validator.New()
	return validate.Struct(k)
}

// IsHardSkill reports whether the keyword is tagged as a hard skill. Only
// hard skills are eligible for the resume's skills section; tools and
// qualifications still participate in bullet matching.
func (k *JobKeyword) IsHardSkill() bool {
	return k.SkillType == "hard skill"
}

// KeywordCluster groups a representative keyword with the near-duplicate
// keywords that were folded into it during deduplication.
type KeywordCluster struct {
	Representative JobKeyword   `json:"representative"`
	Synonyms       []JobKeyword `json:"synonyms,omitempty"`
}

// AllKeywords returns the representative followed by its synonyms.
func (c *KeywordCluster) AllKeywords() []JobKeyword {
	out := make([]JobKeyword, 0, 1+len(c.Synonyms))
	out = append(out, c.Representative)
	return append(out, c.Synonyms...)
}

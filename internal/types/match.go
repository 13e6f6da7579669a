//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// BulletRef identifies a single bullet point within a resume by position.
type BulletRef struct {
	ExperienceIndex int    `json:"experience_index"`
	BulletIndex     int    `json:"bullet_index"`
	Company         string `json:"company,omitempty"`
	Title           string `json:"title,omitempty"`
}

// Key returns a stable map key for the referenced bullet.
func (r BulletRef) Key() string {
	return fmt.Sprintf("%d:%d", r.ExperienceIndex, r.BulletIndex)
}

// KeywordMatch records one keyword assigned to a bullet, with the cosine
// similarity that justified the assignment.
type KeywordMatch struct {
	Keyword    string  `json:"keyword"`
	SkillType  string  `json:"skill_type"`
	Relevance  float64 `json:"relevance_score"`
	Similarity float64 `json:"similarity"`
	Soft       bool    `json:"soft,omitempty"`
}

// BulletMatches pairs a bullet with the keywords matched to it.
type BulletMatches struct {
	Ref      BulletRef      `json:"ref"`
	Text     string         `json:"text"`
	Keywords []KeywordMatch `json:"keywords"`
}

// SkillSelection is the bounded set of technical skills chosen for the
// rewritten resume, grouped by category in presentation order.
type SkillSelection struct {
	Groups SkillGroups `json:"groups"`
	Added  []string    `json:"added,omitempty"`
}

// MatchStats summarizes a matching run for reporting.
type MatchStats struct {
	KeywordsExtracted  int `json:"keywords_extracted"`
	KeywordsDeduped    int `json:"keywords_deduped"`
	BulletsConsidered  int `json:"bullets_considered"`
	BulletsMatched     int `json:"bullets_matched"`
	AssignmentsTotal   int `json:"assignments_total"`
	AssignmentsDropped int `json:"assignments_dropped"`
	SkillsSelected     int `json:"skills_selected"`
}

// MatchResult is the full output of the matching stage.
type MatchResult struct {
	Clusters []KeywordCluster `json:"clusters"`
	Bullets  []BulletMatches  `json:"bullets"`
	Skills   SkillSelection   `json:"skills"`
	Stats    MatchStats       `json:"stats"`
}

// Package enhance rewrites matched resume bullets under a keyword budget and
// replaces the skills section with the selected set.
package enhance

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Enhancer rewrites resume bullets using the LLM client. The input resume is
// never mutated; callers receive a new document.
type Enhancer struct {
	client llm.Client
	cfg    config.Config
}

// NewEnhancer creates an Enhancer backed by the given client.
func NewEnhancer(client llm.Client, cfg config.Config) *Enhancer {
	return &Enhancer{client: client, cfg: cfg}
}

// rewriteOutcome is the result of one bullet rewrite, merged by index.
type rewriteOutcome struct {
	match    types.BulletMatches
	text     string
	fellBack bool
	reason   string
}

// Enhance deep-copies the resume, rewrites every matched bullet under the
// per-resume keyword budget, replaces the technical skills section, and
// returns the modification log ordered by document position. A rewrite
// failure for one bullet degrades to keeping that bullet unchanged; deep
// copy and skills replacement failures are fatal.
func (e *Enhancer) Enhance(ctx context.Context, resume *types.ResumeDocument, matches []types.BulletMatches, skills types.SkillSelection) (*types.ResumeDocument, []types.Modification, error) {
	if resume == nil {
		return nil, nil, &StructuralError{Message: "resume is nil"}
	}
	enhanced := resume.DeepCopy()
	if enhanced == nil {
		return nil, nil, &StructuralError{Message: "deep copy failed"}
	}

	filtered := applyKeywordBudget(matches, e.cfg.MaxKeywordUses)

	outcomes := make([]rewriteOutcome, len(filtered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())

	for i, match := range filtered {
		i, match := i, match
		g.Go(func() error {
			outcomes[i] = e.rewriteBullet(gctx, match)
			return nil
		})
	}
	// Workers never return errors; failures are isolated per bullet.
	_ = g.Wait()

	var mods []types.Modification
	for _, outcome := range outcomes {
		ref := outcome.match.Ref
		if outcome.fellBack {
			mods = append(mods, types.Modification{
				Ref:             ref,
				Original:        outcome.match.Text,
				Updated:         outcome.match.Text,
				KeywordsApplied: nil,
				FellBack:        true,
				Reason:          outcome.reason,
			})
			continue
		}
		if err := applyBullet(enhanced, ref, outcome.text); err != nil {
			return nil, nil, err
		}
		mods = append(mods, types.Modification{
			Ref:             ref,
			Original:        outcome.match.Text,
			Updated:         outcome.text,
			KeywordsApplied: keywordNames(outcome.match.Keywords),
		})
	}

	sort.SliceStable(mods, func(i, j int) bool {
		if mods[i].Ref.ExperienceIndex != mods[j].Ref.ExperienceIndex {
			return mods[i].Ref.ExperienceIndex < mods[j].Ref.ExperienceIndex
		}
		return mods[i].Ref.BulletIndex < mods[j].Ref.BulletIndex
	})

	enhanced.Skills.Technical = skills.Groups
	return enhanced, mods, nil
}

// rewriteBullet asks the model to weave the matched keywords into the bullet
// and validates the result. Any failure produces a fallback outcome.
func (e *Enhancer) rewriteBullet(ctx context.Context, match types.BulletMatches) rewriteOutcome {
	prompt := prompts.Format(prompts.MustGet("enhance.json", "rewrite-bullet"), map[string]string{
		"BulletText": match.Text,
		"Keywords":   strings.Join(keywordNames(match.Keywords), ", "),
	})

	resp, err := e.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return rewriteOutcome{match: match, fellBack: true, reason: "rewrite call failed: " + err.Error()}
	}

	rewritten := cleanRewrite(resp)
	if err := checkRewrite(match.Text, rewritten); err != nil {
		return rewriteOutcome{match: match, fellBack: true, reason: err.Error()}
	}
	return rewriteOutcome{match: match, text: rewritten}
}

func (e *Enhancer) concurrency() int {
	if e.cfg.Concurrency > 0 {
		return e.cfg.Concurrency
	}
	return 1
}

// applyBullet writes the rewritten text into the copy. An out-of-range ref
// means the matches do not belong to this resume.
func applyBullet(doc *types.ResumeDocument, ref types.BulletRef, text string) error {
	if ref.ExperienceIndex < 0 || ref.ExperienceIndex >= len(doc.Experience) {
		return &StructuralError{Message: "bullet reference outside document: " + ref.Key()}
	}
	exp := &doc.Experience[ref.ExperienceIndex]
	if ref.BulletIndex < 0 || ref.BulletIndex >= len(exp.Bullets) {
		return &StructuralError{Message: "bullet reference outside document: " + ref.Key()}
	}
	exp.Bullets[ref.BulletIndex] = text
	return nil
}

// cleanRewrite strips the decorations models add around free-text output.
func cleanRewrite(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.Trim(strings.TrimSpace(text), `"`)
	return strings.TrimSpace(text)
}

func keywordNames(matches []types.KeywordMatch) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Keyword
	}
	return names
}

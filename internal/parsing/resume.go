// Package parsing converts raw resume text into the structured document the
// pipeline operates on.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ParseResume structures raw resume text via the model. The returned
// document always has at least one experience entry with bullets; anything
// less is unusable downstream.
func ParseResume(ctx context.Context, client llm.Client, resumeText string) (*types.ResumeDocument, error) {
	trimmed := strings.TrimSpace(resumeText)
	if trimmed == "" {
		return nil, &ValidationError{Message: "resume text is empty"}
	}

	prompt := prompts.Format(prompts.MustGet("parsing.json", "parse-resume"), map[string]string{
		"ResumeText": trimmed,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume parsing call failed", Cause: err}
	}

	cleaned := llm.StripTrailingCommas(llm.CleanJSONBlock(raw))

	var resume types.ResumeDocument
	if err := json.Unmarshal([]byte(cleaned), &resume); err != nil {
		return nil, &ParseError{Message: "failed to decode resume JSON", Cause: err}
	}

	if err := validateResume(&resume); err != nil {
		return nil, err
	}
	normalizeResume(&resume)
	return &resume, nil
}

func validateResume(resume *types.ResumeDocument) error {
	if len(resume.Experience) == 0 {
		return &ValidationError{Field: "experience", Message: "no experience entries found"}
	}
	bullets := 0
	for _, exp := range resume.Experience {
		bullets += len(exp.Bullets)
	}
	if bullets == 0 {
		return &ValidationError{Field: "experience", Message: "no bullet points found"}
	}
	return nil
}

// normalizeResume trims stray whitespace the model leaves on fields and
// drops empty bullets so indices stay meaningful.
func normalizeResume(resume *types.ResumeDocument) {
	for i := range resume.Experience {
		exp := &resume.Experience[i]
		exp.Company = strings.TrimSpace(exp.Company)
		exp.Title = strings.TrimSpace(exp.Title)
		kept := exp.Bullets[:0]
		for _, b := range exp.Bullets {
			if b = strings.TrimSpace(b); b != "" {
				kept = append(kept, b)
			}
		}
		exp.Bullets = kept
	}
	for i, cat := range resume.Skills.Technical {
		kept := cat.Skills[:0]
		for _, s := range cat.Skills {
			if s = strings.TrimSpace(s); s != "" {
				kept = append(kept, s)
			}
		}
		resume.Skills.Technical[i].Skills = kept
	}
}

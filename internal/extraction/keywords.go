// Package extraction turns job description text into scored keyword records
// via a structured model call.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// minJobTextChars is the threshold below which a job description is treated
// as having nothing worth extracting.
const minJobTextChars = 20

// Extractor extracts keywords from job descriptions using the LLM client.
type Extractor struct {
	client   llm.Client
	validate *validator.Validate
}

// NewExtractor creates an Extractor backed by the given client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{
		client:   client,
		validate: validator.New(),
	}
}

// keywordEnvelope is the response shape the prompt asks for. The bare-array
// form is also accepted since models sometimes drop the wrapper.
type keywordEnvelope struct {
	Keywords json.RawMessage `json:"keywords"`
}

// Extract returns the keywords found in jobText, ordered as the model
// produced them. Keywords whose context is not a literal substring of the
// input, or that fail field validation, are dropped rather than failing the
// batch. A response that cannot be decoded after repair triggers one retry
// with a stricter instruction before surfacing an error.
func (e *Extractor) Extract(ctx context.Context, jobText string) ([]types.JobKeyword, error) {
	trimmed := strings.TrimSpace(jobText)
	if trimmed == "" {
		return nil, &InvalidInputError{Message: "job description is empty"}
	}
	if len(trimmed) < minJobTextChars {
		return []types.JobKeyword{}, nil
	}

	prompt := prompts.Format(prompts.MustGet("extraction.json", "extract-keywords"), map[string]string{
		"JobText": trimmed,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Message: "model call failed", Cause: err}
	}

	keywords, decodeErr := decodeKeywords(raw)
	if decodeErr != nil {
		keywords = salvageKeywords(raw)
	}
	if decodeErr != nil && len(keywords) == 0 {
		keywords, err = e.retryStrict(ctx, trimmed)
		if err != nil {
			return nil, err
		}
	}

	return e.filter(keywords, trimmed), nil
}

// retryStrict reissues the extraction with an instruction that forbids any
// text outside the JSON object.
func (e *Extractor) retryStrict(ctx context.Context, jobText string) ([]types.JobKeyword, error) {
	prompt := prompts.Format(prompts.MustGet("extraction.json", "extract-keywords-strict"), map[string]string{
		"JobText": jobText,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Message: "strict retry call failed", Cause: err}
	}

	keywords, decodeErr := decodeKeywords(raw)
	if decodeErr != nil {
		keywords = salvageKeywords(raw)
		if len(keywords) == 0 {
			return nil, &Error{Message: "unparseable response after strict retry", Raw: raw, Cause: decodeErr}
		}
	}
	return keywords, nil
}

// filter drops keywords with paraphrased context or invalid fields.
func (e *Extractor) filter(keywords []types.JobKeyword, jobText string) []types.JobKeyword {
	lowerText := strings.ToLower(jobText)
	kept := make([]types.JobKeyword, 0, len(keywords))
	for _, kw := range keywords {
		if !strings.Contains(lowerText, strings.ToLower(strings.TrimSpace(kw.Context))) {
			continue
		}
		if err := e.validate.Struct(&kw); err != nil {
			continue
		}
		kept = append(kept, kw)
	}
	return kept
}

// decodeKeywords parses a model response into keyword records. It tolerates
// code fences, surrounding commentary, trailing commas, and a missing
// envelope, and checks the payload shape before decoding into structs.
func decodeKeywords(raw string) ([]types.JobKeyword, error) {
	cleaned := llm.StripTrailingCommas(llm.CleanJSONBlock(raw))

	arrayJSON := cleaned
	if strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		var envelope keywordEnvelope
		if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
			return nil, err
		}
		if envelope.Keywords == nil {
			return nil, &Error{Message: "response object has no keywords field", Raw: raw}
		}
		arrayJSON = string(envelope.Keywords)
	}

	if err := schemas.ValidateKeywordsPayload(arrayJSON); err != nil {
		return nil, err
	}

	var keywords []types.JobKeyword
	if err := json.Unmarshal([]byte(arrayJSON), &keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

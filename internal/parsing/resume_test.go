package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
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

const validResumeJSON = `{
	"contact": {"name": "Jane Doe", "email": "jane@example.com"},
	"skills": {
		"technical_skills": {"Languages": ["Go", " Python "]},
		"soft_skills": ["Communication"]
	},
	"experience": [
		{"company": " Acme ", "title": "Engineer", "dates": "2020-2024",
		 "bullets": ["Built a service handling 10k rps", "  ", "Cut costs by 30%"]}
	]
}`

func TestParseResume_Success(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			assert.Contains(t, prompt, "Jane Doe resume text")
			return validResumeJSON, nil
		},
	}

	resume, err := ParseResume(context.Background(), mockClient, "Jane Doe resume text")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resume.Contact.Name)
	assert.Equal(t, "Acme", resume.Experience[0].Company)
	assert.Equal(t, []string{"Built a service handling 10k rps", "Cut costs by 30%"}, resume.Experience[0].Bullets, "empty bullets dropped")
	assert.Equal(t, []string{"Go", "Python"}, resume.Skills.Technical[0].Skills)
}

func TestParseResume_FencedResponse(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "```json\n" + validResumeJSON + "\n```", nil
		},
	}

	resume, err := ParseResume(context.Background(), mockClient, "resume text")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resume.Contact.Name)
}

func TestParseResume_FlatSkillsNormalized(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"contact": {"name": "Jane"},
				"skills": {"technical_skills": ["Python", "SQL"]},
				"experience": [{"company": "Acme", "title": "Dev", "bullets": ["did work"]}]
			}`, nil
		},
	}

	resume, err := ParseResume(context.Background(), mockClient, "resume text")
	require.NoError(t, err)

	require.Len(t, resume.Skills.Technical, 1)
	assert.Equal(t, types.DefaultCategory, resume.Skills.Technical[0].Name)
	assert.Equal(t, []string{"Python", "SQL"}, resume.Skills.Technical[0].Skills)
}

func TestParseResume_EmptyInput(t *testing.T) {
	_, err := ParseResume(context.Background(), &MockLLMClient{}, "  ")
	require.Error(t, err)

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestParseResume_APIError(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	_, err := ParseResume(context.Background(), mockClient, "resume text")
	require.Error(t, err)

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestParseResume_MalformedJSON(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "sorry, I cannot help with that", nil
		},
	}

	_, err := ParseResume(context.Background(), mockClient, "resume text")
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseResume_NoExperience(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"contact": {"name": "Jane"}, "experience": []}`, nil
		},
	}

	_, err := ParseResume(context.Background(), mockClient, "resume text")
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "experience", valErr.Field)
}

func TestParseResume_NoBullets(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"experience": [{"company": "Acme", "title": "Dev", "bullets": []}]}`, nil
		},
	}

	_, err := ParseResume(context.Background(), mockClient, "resume text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bullet points")
}

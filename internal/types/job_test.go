//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
		want bool
	}{
		{"pending to keywords_extracted", StatusPending, StatusKeywordsExtracted, true},
		{"keywords_extracted to matched", StatusKeywordsExtracted, StatusMatched, true},
		{"matched to enhanced", StatusMatched, StatusEnhanced, true},
		{"enhanced to saved", StatusEnhanced, StatusSaved, true},
		{"saved to completed", StatusSaved, StatusCompleted, true},
		{"skipping a stage", StatusPending, StatusMatched, false},
		{"moving backwards", StatusMatched, StatusPending, false},
		{"any stage to failed", StatusMatched, StatusFailed, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"completed is terminal", StatusCompleted, StatusFailed, false},
		{"failed is terminal", StatusFailed, StatusPending, false},
		{"unknown status", JobStatus("bogus"), StatusMatched, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusSaved.Terminal())
}

func TestNewOptimizationJob(t *testing.T) {
	resumeID := uuid.New()
	job := NewOptimizationJob(resumeID)

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, resumeID, job.ResumeID)
	assert.Equal(t, StatusPending, job.Status)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestOptimizationJob_Advance(t *testing.T) {
	job := NewOptimizationJob(uuid.New())

	require.True(t, job.Advance(StatusKeywordsExtracted))
	assert.Equal(t, StatusKeywordsExtracted, job.Status)

	// Illegal transitions leave the job untouched.
	assert.False(t, job.Advance(StatusCompleted))
	assert.Equal(t, StatusKeywordsExtracted, job.Status)
}

func TestOptimizationJob_Fail(t *testing.T) {
	job := NewOptimizationJob(uuid.New())
	require.True(t, job.Advance(StatusKeywordsExtracted))

	require.True(t, job.Fail("matching", errors.New("embedding service unavailable")))
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "matching", job.FailedStage)
	assert.Equal(t, "embedding service unavailable", job.Error)

	// Terminal: cannot fail twice or advance.
	assert.False(t, job.Fail("enhancement", errors.New("again")))
	assert.False(t, job.Advance(StatusMatched))
}

func TestBulletRef_Key(t *testing.T) {
	ref := BulletRef{ExperienceIndex: 2, BulletIndex: 5}
	assert.Equal(t, "2:5", ref.Key())
}

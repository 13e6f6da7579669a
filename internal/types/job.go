//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks how far an optimization job has progressed.
type JobStatus string

// Job status values, in pipeline order. Failed is terminal and reachable
// from any non-terminal status.
const (
	StatusPending           JobStatus = "pending"
	StatusKeywordsExtracted JobStatus = "keywords_extracted"
	StatusMatched           JobStatus = "matched"
	StatusEnhanced          JobStatus = "enhanced"
	StatusSaved             JobStatus = "saved"
	StatusCompleted         JobStatus = "completed"
	StatusFailed            JobStatus = "failed"
)

var statusOrder = map[JobStatus]int{
	StatusPending:           0,
	StatusKeywordsExtracted: 1,
	StatusMatched:           2,
	StatusEnhanced:          3,
	StatusSaved:             4,
	StatusCompleted:         5,
}

// CanTransition reports whether moving from s to next is a legal status
// change. Progress is monotonic: each transition advances exactly one step,
// except that any non-terminal status may transition to Failed.
func (s JobStatus) CanTransition(next JobStatus) bool {
	if s == StatusCompleted || s == StatusFailed {
		return false
	}
	if next == StatusFailed {
		return true
	}
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// OptimizationJob is the persisted record of a single optimization run.
type OptimizationJob struct {
	ID          uuid.UUID   `json:"id"`
	ResumeID    uuid.UUID   `json:"resume_id"`
	Status      JobStatus   `json:"status"`
	FailedStage string      `json:"failed_stage,omitempty"`
	Error       string      `json:"error,omitempty"`
	Stats       *MatchStats `json:"stats,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewOptimizationJob creates a pending job for the given resume.
func NewOptimizationJob(resumeID uuid.UUID) *OptimizationJob {
	now := time.Now().UTC()
	return &OptimizationJob{
		ID:        uuid.New(),
		ResumeID:  resumeID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the job to the next status if the transition is legal.
func (j *OptimizationJob) Advance(next JobStatus) bool {
	if !j.Status.CanTransition(next) {
		return false
	}
	j.Status = next
	j.UpdatedAt = time.Now().UTC()
	return true
}

// Fail marks the job failed, recording the stage and error message.
func (j *OptimizationJob) Fail(stage string, err error) bool {
	if !j.Status.CanTransition(StatusFailed) {
		return false
	}
	j.Status = StatusFailed
	j.FailedStage = stage
	if err != nil {
		j.Error = err.Error()
	}
	j.UpdatedAt = time.Now().UTC()
	return true
}

// Modification records one bullet rewrite performed by the enhancement stage.
type Modification struct {
	Ref             BulletRef `json:"ref"`
	Original        string    `json:"original"`
	Updated         string    `json:"updated"`
	KeywordsApplied []string  `json:"keywords_applied"`
	FellBack        bool      `json:"fell_back,omitempty"`
	Reason          string    `json:"reason,omitempty"`
}

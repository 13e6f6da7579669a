// Package store provides persistence for resumes and optimization jobs.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Store persists resumes, enhanced resumes, and optimization jobs. Both the
// Postgres-backed implementation and the in-memory fallback satisfy it; the
// pipeline never assumes a particular backing store.
type Store interface {
	SaveResume(ctx context.Context, id uuid.UUID, resume *types.ResumeDocument) error
	GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeDocument, error)

	SaveEnhanced(ctx context.Context, jobID uuid.UUID, resume *types.ResumeDocument, mods []types.Modification) error
	GetEnhanced(ctx context.Context, jobID uuid.UUID) (*types.ResumeDocument, []types.Modification, error)

	SaveJob(ctx context.Context, job *types.OptimizationJob) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.OptimizationJob, error)
}

// NotFoundError indicates the requested record does not exist.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Postgres is the database-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// SaveResume stores a resume document.
func (p *Postgres) SaveResume(ctx context.Context, id uuid.UUID, resume *types.ResumeDocument) error {
	content, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO resumes (id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET content = $2, updated_at = NOW()`,
		id, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume loads a resume document.
func (p *Postgres) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeDocument, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM resumes WHERE id = $1`, id,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Kind: "resume", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}

	var resume types.ResumeDocument
	if err := json.Unmarshal(content, &resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume record: %w", err)
	}
	return &resume, nil
}

// SaveEnhanced stores an enhanced resume and its modification log, keyed by
// the job that produced it.
func (p *Postgres) SaveEnhanced(ctx context.Context, jobID uuid.UUID, resume *types.ResumeDocument, mods []types.Modification) error {
	content, err := json.Marshal(enhancedRecord{Resume: resume, Modifications: mods})
	if err != nil {
		return fmt.Errorf("failed to marshal enhanced resume: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO enhanced_resumes (job_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (job_id) DO UPDATE SET content = $2, updated_at = NOW()`,
		jobID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save enhanced resume: %w", err)
	}
	return nil
}

// GetEnhanced loads an enhanced resume and its modification log.
func (p *Postgres) GetEnhanced(ctx context.Context, jobID uuid.UUID) (*types.ResumeDocument, []types.Modification, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM enhanced_resumes WHERE job_id = $1`, jobID,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, &NotFoundError{Kind: "enhanced resume", ID: jobID}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load enhanced resume: %w", err)
	}

	var rec enhancedRecord
	if err := json.Unmarshal(content, &rec); err != nil {
		return nil, nil, fmt.Errorf("failed to decode enhanced resume record: %w", err)
	}
	return rec.Resume, rec.Modifications, nil
}

// SaveJob upserts an optimization job record, the audit trail for a run.
func (p *Postgres) SaveJob(ctx context.Context, job *types.OptimizationJob) error {
	if job == nil {
		return fmt.Errorf("job is nil")
	}
	stats, err := json.Marshal(job.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal job stats: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO optimization_jobs (id, resume_id, status, failed_stage, error, stats, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   status = $3, failed_stage = $4, error = $5, stats = $6, updated_at = $8`,
		job.ID, job.ResumeID, string(job.Status), job.FailedStage, job.Error, stats, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob loads an optimization job record.
func (p *Postgres) GetJob(ctx context.Context, id uuid.UUID) (*types.OptimizationJob, error) {
	var (
		job    types.OptimizationJob
		status string
		stats  []byte
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id, resume_id, status, failed_stage, error, stats, created_at, updated_at
		 FROM optimization_jobs WHERE id = $1`, id,
	).Scan(&job.ID, &job.ResumeID, &status, &job.FailedStage, &job.Error, &stats, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Kind: "job", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	job.Status = types.JobStatus(status)
	if len(stats) > 0 && string(stats) != "null" {
		if err := json.Unmarshal(stats, &job.Stats); err != nil {
			return nil, fmt.Errorf("failed to decode job stats: %w", err)
		}
	}
	return &job, nil
}

// Package pipeline provides the high-level orchestration for resume
// optimization: extraction, matching, enhancement, persistence.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/enhance"
	"github.com/jonathan/resume-optimizer/internal/extraction"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/matching"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/store"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// StageError names the pipeline stage that failed.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Result is what a completed optimization run hands back to the caller.
type Result struct {
	Job           *types.OptimizationJob
	Match         *types.MatchResult
	Enhanced      *types.ResumeDocument
	Modifications []types.Modification
}

// Pipeline sequences the optimization stages and owns the job lifecycle.
// The job record is persisted at every state transition so a crash
// mid-pipeline leaves an inspectable record rather than silent loss.
type Pipeline struct {
	extractor *extraction.Extractor
	matcher   *matching.Matcher
	enhancer  *enhance.Enhancer
	store     store.Store
	printer   *observability.Printer
}

// New wires a pipeline from its collaborators. The printer may be nil to
// disable verbose output.
func New(client llm.Client, emb *embedding.Client, st store.Store, cfg config.Config, printer *observability.Printer) *Pipeline {
	return &Pipeline{
		extractor: extraction.NewExtractor(client),
		matcher:   matching.NewMatcher(emb, client, cfg),
		enhancer:  enhance.NewEnhancer(client, cfg),
		store:     st,
		printer:   printer,
	}
}

// Optimize runs the full pipeline for a stored resume against a job
// description. On a fatal stage error the job is transitioned to failed and
// persisted with everything computed so far, and a StageError is returned.
func (p *Pipeline) Optimize(ctx context.Context, resumeID uuid.UUID, jobText string) (*Result, error) {
	resume, err := p.store.GetResume(ctx, resumeID)
	if err != nil {
		return nil, &StageError{Stage: "load", Cause: err}
	}

	job := types.NewOptimizationJob(resumeID)
	if err := p.store.SaveJob(ctx, job); err != nil {
		return nil, &StageError{Stage: "load", Cause: err}
	}

	keywords, err := p.extractor.Extract(ctx, jobText)
	if err != nil {
		return nil, p.fail(ctx, job, "extraction", err)
	}
	if err := p.advance(ctx, job, types.StatusKeywordsExtracted); err != nil {
		return nil, err
	}

	match, err := p.matcher.Match(ctx, keywords, resume)
	if err != nil {
		return nil, p.fail(ctx, job, "matching", err)
	}
	job.Stats = &match.Stats
	if err := p.advance(ctx, job, types.StatusMatched); err != nil {
		return nil, err
	}
	if p.printer != nil {
		p.printer.PrintKeywords(match.Clusters)
		p.printer.PrintMatches(match.Bullets)
		p.printer.PrintSkillSelection(match.Skills)
		p.printer.PrintStats(match.Stats)
	}

	enhanced, mods, err := p.enhancer.Enhance(ctx, resume, match.Bullets, match.Skills)
	if err != nil {
		return nil, p.fail(ctx, job, "enhancement", err)
	}
	if err := p.advance(ctx, job, types.StatusEnhanced); err != nil {
		return nil, err
	}
	if p.printer != nil {
		p.printer.PrintModifications(mods)
	}

	if err := p.store.SaveEnhanced(ctx, job.ID, enhanced, mods); err != nil {
		return nil, p.fail(ctx, job, "save", err)
	}
	if err := p.advance(ctx, job, types.StatusSaved); err != nil {
		return nil, err
	}

	if err := p.advance(ctx, job, types.StatusCompleted); err != nil {
		return nil, err
	}

	return &Result{
		Job:           job,
		Match:         match,
		Enhanced:      enhanced,
		Modifications: mods,
	}, nil
}

// advance moves the job forward and persists the transition.
func (p *Pipeline) advance(ctx context.Context, job *types.OptimizationJob, next types.JobStatus) error {
	if !job.Advance(next) {
		return p.fail(ctx, job, string(next), fmt.Errorf("illegal transition from %s to %s", job.Status, next))
	}
	if err := p.store.SaveJob(ctx, job); err != nil {
		return p.fail(ctx, job, string(next), err)
	}
	return nil
}

// fail transitions the job to failed, persists it best-effort, and returns
// the structured stage error. Persistence failure here must not mask the
// original error.
func (p *Pipeline) fail(ctx context.Context, job *types.OptimizationJob, stage string, cause error) error {
	job.Fail(stage, cause)
	_ = p.store.SaveJob(ctx, job)
	return &StageError{Stage: stage, Cause: cause}
}

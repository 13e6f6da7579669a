package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Memory is an in-process Store used when no database is configured. Records
// are deep-copied through JSON on both save and load so callers can never
// alias stored state. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	resumes  map[uuid.UUID][]byte
	enhanced map[uuid.UUID][]byte
	jobs     map[uuid.UUID][]byte
}

type enhancedRecord struct {
	Resume        *types.ResumeDocument `json:"resume"`
	Modifications []types.Modification  `json:"modifications"`
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		resumes:  make(map[uuid.UUID][]byte),
		enhanced: make(map[uuid.UUID][]byte),
		jobs:     make(map[uuid.UUID][]byte),
	}
}

// SaveResume stores a resume document.
func (m *Memory) SaveResume(_ context.Context, id uuid.UUID, resume *types.ResumeDocument) error {
	return m.put(&m.resumes, id, resume)
}

// GetResume loads a resume document.
func (m *Memory) GetResume(_ context.Context, id uuid.UUID) (*types.ResumeDocument, error) {
	var resume types.ResumeDocument
	if err := m.get(m.resumes, "resume", id, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// SaveEnhanced stores an enhanced resume with its modification log, keyed by
// the job that produced it.
func (m *Memory) SaveEnhanced(_ context.Context, jobID uuid.UUID, resume *types.ResumeDocument, mods []types.Modification) error {
	return m.put(&m.enhanced, jobID, enhancedRecord{Resume: resume, Modifications: mods})
}

// GetEnhanced loads an enhanced resume and its modification log.
func (m *Memory) GetEnhanced(_ context.Context, jobID uuid.UUID) (*types.ResumeDocument, []types.Modification, error) {
	var rec enhancedRecord
	if err := m.get(m.enhanced, "enhanced resume", jobID, &rec); err != nil {
		return nil, nil, err
	}
	return rec.Resume, rec.Modifications, nil
}

// SaveJob stores an optimization job record.
func (m *Memory) SaveJob(_ context.Context, job *types.OptimizationJob) error {
	if job == nil {
		return fmt.Errorf("job is nil")
	}
	return m.put(&m.jobs, job.ID, job)
}

// GetJob loads an optimization job record.
func (m *Memory) GetJob(_ context.Context, id uuid.UUID) (*types.OptimizationJob, error) {
	var job types.OptimizationJob
	if err := m.get(m.jobs, "job", id, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (m *Memory) put(table *map[uuid.UUID][]byte, id uuid.UUID, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	m.mu.Lock()
	(*table)[id] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) get(table map[uuid.UUID][]byte, kind string, id uuid.UUID, out any) error {
	m.mu.RLock()
	data, ok := table[id]
	m.mu.RUnlock()
	if !ok {
		return &NotFoundError{Kind: kind, ID: id}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s record: %w", kind, err)
	}
	return nil
}

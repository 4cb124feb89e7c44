// Package jobs provides the job registry tracking pipeline runs.
package jobs

import (
	"fmt"
	"sync"
	"time"

	"github.com/prasad/rfp-pilot/internal/types"
)

// Status is the lifecycle state of a job.
type Status string

// Job lifecycle states. Completed and Failed are terminal.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job tracks one submitted document through the pipeline. Progress is
// monotonically non-decreasing while the job is processing. Jobs are
// retained indefinitely; eviction is a known limitation of the demo.
type Job struct {
	ID        string
	Filename  string
	Status    Status
	Progress  int
	Result    *types.QuoteResult
	Message   string
	CreatedAt time.Time
}

// ErrNotFound is returned when a job id is not in the store.
var ErrNotFound = fmt.Errorf("job not found")

// Store is the job registry contract: unique ids, concurrent-safe reads
// while the job's single processing goroutine mutates its entry.
type Store interface {
	// Create registers a new job. Fails on duplicate id.
	Create(job *Job) error
	// Get returns a snapshot of the job with the given id.
	Get(id string) (Job, error)
	// Update applies fn to the stored job under the store lock.
	Update(id string, fn func(*Job)) error
}

// MemoryStore is the in-process Store backing the demo.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewMemoryStore creates an empty in-memory job registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*Job)}
}

// Create registers a new job.
func (s *MemoryStore) Create(job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}

	stored := *job
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a copy of the job, safe to read without further locking.
func (s *MemoryStore) Get(id string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return *job, nil
}

// Update mutates the job under the write lock. Progress regressions are
// clamped so polling never observes progress moving backwards.
func (s *MemoryStore) Update(id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}

	before := job.Progress
	fn(job)
	if job.Progress < before {
		job.Progress = before
	}
	return nil
}

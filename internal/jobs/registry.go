package jobs

import (
	"sync"
	"time"

	"github.com/yurist-tools/lawsplit/internal/models"
)

// Registry is the process-local store of job state. Every operation
// takes the lock for its whole duration, so readers never observe a
// half-applied mutation. Job values go in and out by copy; the registry
// owns the stored records.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*models.Job)}
}

// Create stores a new job record.
func (r *Registry) Create(job models.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := job
	r.jobs[job.ID] = &stored
}

// Get returns a copy of the job, if present.
func (r *Registry) Get(id string) (models.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	return *job, true
}

// Update applies fn to the stored job under the lock and reports whether
// the job existed. fn must not block.
func (r *Registry) Update(id string, fn func(*models.Job)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return false
	}
	fn(job)
	return true
}

// Remove deletes the job record.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

// Count returns the number of registered jobs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// SweepExpired removes every job created before cutoff and returns
// copies of the removed records so the caller can destroy their
// workspaces. Jobs younger than cutoff — including any still being
// processed — are untouched.
func (r *Registry) SweepExpired(cutoff time.Time) []models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []models.Job
	for id, job := range r.jobs {
		if job.CreatedAt.Before(cutoff) {
			expired = append(expired, *job)
			delete(r.jobs, id)
		}
	}
	return expired
}

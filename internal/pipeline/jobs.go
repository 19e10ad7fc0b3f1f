package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"
)

// JobStatus represents the state of a generation batch.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusGenerating JobStatus = "generating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// Job tracks the state of one batch of titles.
type Job struct {
	mu sync.Mutex

	ID         string   `json:"job_id"`
	Titles     []string `json:"titles"`
	CategoryID string   `json:"category_id,omitempty"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	results []TitleResult
	errors  []string
}

// TitleResult is the per-title outcome within a batch.
type TitleResult struct {
	Title    string `json:"title"`
	PostID   string `json:"post_id,omitempty"`
	Slug     string `json:"slug,omitempty"`
	HasImage bool   `json:"has_image"`
	Error    string `json:"error,omitempty"`
}

// Progress tracks batch progress.
type Progress struct {
	TotalTitles    int      `json:"total_titles"`
	TitlesDone     int      `json:"titles_done"`
	PostsPublished int      `json:"posts_published"`
	ImagesAttached int      `json:"images_attached"`
	Errors         []string `json:"errors"`
}

// NewJob builds a queued batch job for the given titles.
func NewJob(titles []string, categoryID string) *Job {
	now := time.Now()
	return &Job{
		ID:         JobID(titles, now),
		Titles:     titles,
		CategoryID: categoryID,
		Status:     StatusQueued,
		Phase:      "queued",
		Progress:   Progress{TotalTitles: len(titles)},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// JobID derives a short identifier for a batch submission.
func JobID(titles []string, at time.Time) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s-%d", strings.Join(titles, "\n"), at.UnixNano()))
	return fmt.Sprintf("%x", h[:])[:20]
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetPhase updates only the phase label.
func (j *Job) SetPhase(phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddResult records one finished title.
func (j *Job) AddResult(r TitleResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, r)
	j.Progress.TitlesDone++
	if r.Error == "" {
		j.Progress.PostsPublished++
		if r.HasImage {
			j.Progress.ImagesAttached++
		}
	} else {
		j.errors = append(j.errors, fmt.Sprintf("%s: %s", r.Title, r.Error))
		j.Progress.Errors = j.errors
	}
	j.UpdatedAt = time.Now()
}

// AddError records a batch-level error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string        `json:"job_id"`
	Titles     []string      `json:"titles"`
	CategoryID string        `json:"category_id,omitempty"`
	Status     JobStatus     `json:"status"`
	Phase      string        `json:"phase"`
	Progress   Progress      `json:"progress"`
	Results    []TitleResult `json:"results"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	results := make([]TitleResult, len(j.results))
	copy(results, j.results)
	return JobSnapshot{
		ID:         j.ID,
		Titles:     append([]string(nil), j.Titles...),
		CategoryID: j.CategoryID,
		Status:     j.Status,
		Phase:      j.Phase,
		Progress: Progress{
			TotalTitles:    j.Progress.TotalTitles,
			TitlesDone:     j.Progress.TitlesDone,
			PostsPublished: j.Progress.PostsPublished,
			ImagesAttached: j.Progress.ImagesAttached,
			Errors:         errs,
		},
		Results: results,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

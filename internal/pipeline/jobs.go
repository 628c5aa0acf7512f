package pipeline

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"time"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusPreparing JobStatus = "preparing"
	StatusInlining  JobStatus = "inlining"
	StatusExporting JobStatus = "exporting"
	StatusVerifying JobStatus = "verifying"
	StatusCompleted JobStatus = "completed"
	StatusWarnings  JobStatus = "completed_with_warnings"
	StatusFailed    JobStatus = "failed"
)

// Progress tracks conversion progress and per-image failures.
type Progress struct {
	ImagesInlined int      `json:"images_inlined"`
	DefsMerged    int      `json:"defs_merged"`
	Pages         int      `json:"pages"`
	Warnings      []string `json:"warnings"`
}

// Job tracks the state of a single SVG-to-PDF conversion. The working
// directory holds the uploaded input, any linked assets and the produced PDF;
// it lives until the job expires from the store.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Conversion options.
	TextToPath bool
	MaxDepth   int

	// Internal: not serialized.
	workDir   string
	inputPath string
	pdfPath   string
	errors    []string
}

func NewJob(id, filename, workDir, inputPath string) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		Filename:  filename,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		workDir:   workDir,
		inputPath: inputPath,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records a fatal error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Warnings = append(j.Progress.Warnings, err)
	j.UpdatedAt = time.Now()
}

// AddWarnings records non-fatal per-image warnings.
func (j *Job) AddWarnings(ws []string) {
	if len(ws) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Warnings = append(j.Progress.Warnings, ws...)
	j.UpdatedAt = time.Now()
}

// SetCounts records inlining progress.
func (j *Job) SetCounts(imagesInlined, defsMerged int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ImagesInlined = imagesInlined
	j.Progress.DefsMerged = defsMerged
	j.UpdatedAt = time.Now()
}

// SetResult records the finished artifact.
func (j *Job) SetResult(pdfPath string, pages int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pdfPath = pdfPath
	j.Progress.Pages = pages
	j.UpdatedAt = time.Now()
}

// Input returns the job's input file path.
func (j *Job) Input() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inputPath
}

// WorkDir returns the job's working directory.
func (j *Job) WorkDir() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.workDir
}

func (j *Job) touchedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// PDF returns the produced PDF path once the job has finished successfully.
func (j *Job) PDF() (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	done := j.Status == StatusCompleted || j.Status == StatusWarnings
	return j.pdfPath, done && j.pdfPath != ""
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	warnings := j.Progress.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			ImagesInlined: j.Progress.ImagesInlined,
			DefsMerged:    j.Progress.DefsMerged,
			Pages:         j.Progress.Pages,
			Warnings:      warnings,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
// Evicting a job also removes its working directory.
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

// Cleanup removes expired jobs and their on-disk artifacts.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.touchedAt()) > s.ttl {
			if dir := job.WorkDir(); dir != "" {
				os.RemoveAll(dir)
			}
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string. Job IDs
// derive from it.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

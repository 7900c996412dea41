package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/xmlrecords"
	"github.com/dgallion1/xmlrecords/internal/convert"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusConverting JobStatus = "converting"
	StatusValidating JobStatus = "validating"
	StatusDelivering JobStatus = "delivering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// Job tracks the state of a single document conversion.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	spec        convert.Spec
	callbackURL string
	docData     []byte
	records     []*xmlrecords.Record
	errors      []string
}

// Progress tracks conversion progress.
type Progress struct {
	Records   int      `json:"records"`
	Fields    int      `json:"fields"`
	Words     int      `json:"words"`
	Delivered int      `json:"delivered"`
	Errors    []string `json:"errors"`
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

// Delete removes a job and reports whether it existed.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// List returns all jobs, newest first.
func (s *JobStore) List() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
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

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetCounts records the size of the converted output.
func (j *Job) SetCounts(records, fields, words int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Records = records
	j.Progress.Fields = fields
	j.Progress.Words = words
	j.UpdatedAt = time.Now()
}

// SetDelivered records how many records reached the callback endpoint.
func (j *Job) SetDelivered(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Delivered = n
	j.UpdatedAt = time.Now()
}

// SetSpec sets the conversion spec for the job.
func (j *Job) SetSpec(spec convert.Spec) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.spec = spec
}

// Spec returns the conversion spec.
func (j *Job) Spec() convert.Spec {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.spec
}

// SetCallbackURL sets the optional delivery endpoint.
func (j *Job) SetCallbackURL(u string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.callbackURL = u
}

// CallbackURL returns the delivery endpoint, empty when none was given.
func (j *Job) CallbackURL() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.callbackURL
}

// SetDocument sets the raw document bytes for processing.
func (j *Job) SetDocument(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.docData = data
}

// Document returns the raw document bytes.
func (j *Job) Document() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.docData
}

// SetRecords stores the converted records for later retrieval.
func (j *Job) SetRecords(records []*xmlrecords.Record) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = records
}

// Records returns the converted records, nil until conversion finishes.
func (j *Job) Records() []*xmlrecords.Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.records
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	DocID     string    `json:"doc_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Progress: Progress{
			Records:   j.Progress.Records,
			Fields:    j.Progress.Fields,
			Words:     j.Progress.Words,
			Delivered: j.Progress.Delivered,
			Errors:    errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

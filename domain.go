package lfx

import (
	"os"
	"sync"
)

// FileEntry represents a filesystem object found during traversal
type FileEntry struct {
	Path  string
	Info  os.FileInfo
	Depth int
}

// FileResult represents the outcome of rewriting one file
type FileResult struct {
	Path         string
	Outcome      Outcome
	SizeBefore   int64
	SizeAfter    int64
	PairsRemoved int
	Err          error
}

// Failure is a path that could not be processed and the reason
type Failure struct {
	Path string
	Err  error
}

// Report collects the results of a normalize run.
// It is safe for concurrent use.
type Report struct {
	mu        sync.Mutex
	visited   int
	converted int
	unchanged int
	skipped   int
	failures  []Failure
}

func (r *Report) add(result FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visited++
	switch result.Outcome {
	case OutcomeConverted:
		r.converted++
	case OutcomeUnchanged:
		r.unchanged++
	case OutcomeSkipped:
		r.skipped++
	case OutcomeFailed:
		r.failures = append(r.failures, Failure{Path: result.Path, Err: result.Err})
	}
}

func (r *Report) addFailure(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, Failure{Path: path, Err: err})
}

// Visited returns the number of regular files handed to the rewrite step
func (r *Report) Visited() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visited
}

// Converted returns the number of files that contained CRLF pairs
func (r *Report) Converted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.converted
}

// Unchanged returns the number of files rewritten with identical content
func (r *Report) Unchanged() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unchanged
}

// Skipped returns the number of files left untouched because they are not text
func (r *Report) Skipped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// Failures returns a copy of the recorded failures, including subdirectories
// that could not be listed.
func (r *Report) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()

	failures := make([]Failure, len(r.failures))
	copy(failures, r.failures)
	return failures
}

// Failed reports whether any file or subdirectory failed
func (r *Report) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}

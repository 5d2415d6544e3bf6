package lfx

import "go.uber.org/zap"

// NormalizeOption represents optional parameters for normalize operations
type NormalizeOption func(*normalizeOptions)

type normalizeOptions struct {
	logger        *zap.Logger
	workers       int
	atomicReplace bool
	resultHandler ResultFunc
}

// defaultNormalizeOptions returns default normalize options
func defaultNormalizeOptions() *normalizeOptions {
	return &normalizeOptions{
		logger:        zap.NewNop(),
		workers:       1,
		atomicReplace: false,
	}
}

func buildNormalizeOptions(options []NormalizeOption) *normalizeOptions {
	opts := defaultNormalizeOptions()
	for _, opt := range options {
		opt(opts)
	}

	return opts
}

// WithLogger sets the logger used to report per-file problems
func WithLogger(logger *zap.Logger) NormalizeOption {
	return func(opts *normalizeOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithWorkers sets how many files are rewritten concurrently.
// Values below 1 fall back to sequential processing.
func WithWorkers(n int) NormalizeOption {
	return func(opts *normalizeOptions) {
		if n < 1 {
			n = 1
		}
		opts.workers = n
	}
}

// WithAtomicReplace writes the new content to a temporary file in the same
// directory and renames it over the original.
func WithAtomicReplace() NormalizeOption {
	return func(opts *normalizeOptions) {
		opts.atomicReplace = true
	}
}

// WithResultHandler sets a function called after each file is processed.
// With more than one worker it is called concurrently.
func WithResultHandler(handler ResultFunc) NormalizeOption {
	return func(opts *normalizeOptions) {
		opts.resultHandler = handler
	}
}

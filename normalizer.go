package lfx

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Normalizer converts CRLF line endings to LF in every regular file below
// a root directory.
type Normalizer struct {
	fs   billy.Filesystem
	root string
	opts *normalizeOptions
}

// New creates a Normalizer for the tree below root on fsys
func New(fsys billy.Filesystem, root string, options ...NormalizeOption) *Normalizer {
	return &Normalizer{
		fs:   fsys,
		root: root,
		opts: buildNormalizeOptions(options),
	}
}

// Run walks the tree and rewrites every regular file.
//
// Per-file failures and subdirectories that cannot be listed are logged,
// recorded in the report and do not stop the run. The returned error is
// non-nil only when the root cannot be accessed or ctx is done.
func (n *Normalizer) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	logger := n.opts.logger.With(zap.String("root", n.root))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(n.opts.workers)

	walkErr := Walk(egCtx, n.fs, n.root, func(entry FileEntry, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable directory",
				zap.String("path", entry.Path),
				zap.Int("depth", entry.Depth),
				zap.Error(err))
			report.addFailure(entry.Path, err)
			return nil
		}

		if !IsRegular(entry.Info) {
			return nil
		}

		path := entry.Path
		eg.Go(func() error {
			n.process(report, logger, path)
			return nil
		})

		return nil
	})

	// Workers never return errors, so Wait only waits.
	_ = eg.Wait()

	if walkErr != nil {
		return report, walkErr
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	logger.Debug("normalize finished",
		zap.Int("visited", report.Visited()),
		zap.Int("converted", report.Converted()),
		zap.Int("unchanged", report.Unchanged()),
		zap.Int("skipped", report.Skipped()),
		zap.Int("failed", len(report.Failures())))

	return report, nil
}

func (n *Normalizer) process(report *Report, logger *zap.Logger, path string) {
	var options []NormalizeOption
	if n.opts.atomicReplace {
		options = append(options, WithAtomicReplace())
	}

	result := RewriteFile(n.fs, path, options...)

	switch result.Outcome {
	case OutcomeFailed:
		logger.Warn("failed to rewrite file",
			zap.String("path", result.Path),
			zap.Error(result.Err))
	case OutcomeSkipped:
		logger.Warn("skipping file that is not valid text",
			zap.String("path", result.Path),
			zap.Error(result.Err))
	case OutcomeConverted:
		logger.Debug("converted file",
			zap.String("path", result.Path),
			zap.Int("pairs", result.PairsRemoved))
	}

	report.add(result)

	if n.opts.resultHandler != nil {
		n.opts.resultHandler(result)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boostgo/lfx"
	"github.com/boostgo/lfx/internal/logging"
)

// newFilesystem opens the directory tree that gets converted
var newFilesystem = func(root string) billy.Filesystem {
	return osfs.New(root)
}

type rootOptions struct {
	root      string
	workers   int
	atomic    bool
	verbose   bool
	logFormat string
}

func newRootCommand(stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lfx",
		Short: "Convert CRLF line endings to LF in every file below a directory",
		Long: `lfx walks the directory tree below the working directory (or --root)
and rewrites every regular file, replacing each CRLF pair with LF.
Lone CR bytes are kept. Symlinks are not followed. Files that are not
valid UTF-8 are left untouched and reported.

Files are rewritten in place. If a write fails midway the file can be
left truncated; use --atomic to write through a temporary file instead.

The exit status is 1 when the root cannot be read or any file or
directory failed, and 0 otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNormalize(cmd.Context(), opts, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", "", "directory to convert (default: working directory)")
	flags.IntVar(&opts.workers, "workers", 1, "number of files rewritten concurrently")
	flags.BoolVar(&opts.atomic, "atomic", false, "replace files through a temporary file and rename")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every converted file")
	flags.StringVar(&opts.logFormat, "log-format", string(logging.FormatConsole), "log format: console or json")

	return cmd
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cmd := newRootCommand(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "lfx: %v\n", err)
		return 1
	}

	return 0
}

func runNormalize(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	logger, err := logging.New(stderr, logging.Options{
		Format:  logging.Format(opts.logFormat),
		Verbose: opts.verbose,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	root, err := resolveRoot(opts.root)
	if err != nil {
		return err
	}

	options := []lfx.NormalizeOption{
		lfx.WithLogger(logger),
		lfx.WithWorkers(opts.workers),
	}
	if opts.atomic {
		options = append(options, lfx.WithAtomicReplace())
	}

	report, err := lfx.New(newFilesystem(root), ".", options...).Run(ctx)
	if err != nil {
		logger.Error("normalize aborted", zap.String("root", root), zap.Error(err))
		return fmt.Errorf("cannot process %s: %w", root, err)
	}

	if failures := report.Failures(); len(failures) > 0 {
		return fmt.Errorf("%d path(s) under %s could not be converted", len(failures), root)
	}

	return nil
}

// resolveRoot returns the absolute traversal root, defaulting to the
// working directory.
func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	return abs, nil
}

package lfx

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
)

var errNotDirectory = errors.New("not a directory")

// WalkFunc is called for each entry below the walk root. When a directory
// cannot be listed it is called a second time for that directory with the
// listing error. Returning fs.SkipDir for a directory skips its contents,
// returning fs.SkipAll stops the walk without error.
type WalkFunc func(entry FileEntry, err error) error

// ResultFunc is called with the result of every processed file
type ResultFunc func(result FileResult)

// IsRegular reports whether info describes a regular file.
// Directories, symlinks, devices, sockets and pipes are not regular.
func IsRegular(info os.FileInfo) bool {
	return info != nil && info.Mode().IsRegular()
}

// Walk walks the tree below root and calls walkFn for every entry at any
// depth. The root itself is not passed to walkFn. Directory listings do not
// follow symlinks, so a symlink to a directory is reported but never entered.
//
// An inaccessible root is returned as an error. Errors listing deeper
// directories go to walkFn and the walk continues unless walkFn returns an
// error. The walk stops when ctx is done.
func Walk(ctx context.Context, fsys billy.Filesystem, root string, walkFn WalkFunc) error {
	info, err := fsys.Stat(root)
	if err != nil {
		return newWalkRootError(root, err)
	}

	if !info.IsDir() {
		return newWalkRootError(root, errNotDirectory)
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return newWalkRootError(root, err)
	}

	err = walkEntries(ctx, fsys, root, entries, 1, walkFn)
	if errors.Is(err, fs.SkipAll) || errors.Is(err, fs.SkipDir) {
		return nil
	}

	return err
}

func walkEntries(ctx context.Context, fsys billy.Filesystem, dir string, entries []os.FileInfo, depth int, walkFn WalkFunc) error {
	for _, info := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := FileEntry{
			Path:  fsys.Join(dir, info.Name()),
			Info:  info,
			Depth: depth,
		}

		if err := walkFn(entry, nil); err != nil {
			if errors.Is(err, fs.SkipDir) && info.IsDir() {
				continue
			}
			return err
		}

		if !info.IsDir() {
			continue
		}

		children, err := fsys.ReadDir(entry.Path)
		if err != nil {
			if err := walkFn(entry, newReadDirectoryError(entry.Path, err)); err != nil {
				if errors.Is(err, fs.SkipDir) {
					continue
				}
				return err
			}
			continue
		}

		if err := walkEntries(ctx, fsys, entry.Path, children, depth+1, walkFn); err != nil {
			return err
		}
	}

	return nil
}

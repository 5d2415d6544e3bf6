package lfx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
)

const tempFilePrefix = ".lfx-"

var errModeMismatch = errors.New("cannot preserve permission bits")

// RewriteFile replaces every CRLF pair in the file at path with LF and
// writes the result back. Content that is not valid UTF-8 is never written
// and the file is reported as skipped.
//
// The file is read completely and closed before it is reopened for writing.
// Files without CRLF pairs are rewritten with identical content.
func RewriteFile(fsys billy.Filesystem, path string, options ...NormalizeOption) FileResult {
	opts := buildNormalizeOptions(options)

	result := FileResult{Path: path}

	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return failed(result, newReadFileError(path, err))
	}
	result.SizeBefore = int64(len(data))

	if err := decodeText(data); err != nil {
		result.Outcome = OutcomeSkipped
		result.SizeAfter = result.SizeBefore
		result.Err = newDecodeFileError(path, err)
		return result
	}

	converted := Dos2Unix(data)
	result.PairsRemoved = CountCRLF(data)

	if opts.atomicReplace {
		err = replaceFile(fsys, path, converted)
	} else {
		err = truncateFile(fsys, path, converted)
	}
	if err != nil {
		return failed(result, err)
	}

	result.SizeAfter = int64(len(converted))
	result.Outcome = OutcomeUnchanged
	if result.PairsRemoved > 0 {
		result.Outcome = OutcomeConverted
	}

	return result
}

func failed(result FileResult, err error) FileResult {
	result.Outcome = OutcomeFailed
	result.Err = err
	return result
}

// truncateFile overwrites the content of an existing file in place.
// A failed write can leave the file truncated.
func truncateFile(fsys billy.Basic, path string, data []byte) error {
	file, err := fsys.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return newOpenFileError(path, err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return newWriteFileError(path, err)
	}

	if err := file.Close(); err != nil {
		return newWriteFileError(path, err)
	}

	return nil
}

// replaceFile writes data to a temporary file next to path and renames it
// over path, keeping the permission bits of the original. When the temporary
// file cannot be given those bits the original is left untouched.
func replaceFile(fsys billy.Filesystem, path string, data []byte) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return newOpenFileError(path, err)
	}
	mode := info.Mode().Perm()

	tmpPath := tempFileName(path)
	tmp, err := fsys.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return newReplaceFileError(path, tmpPath, mode, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpPath)
		return newReplaceFileError(path, tmpPath, mode, err)
	}

	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpPath)
		return newReplaceFileError(path, tmpPath, mode, err)
	}

	if err := matchMode(fsys, tmpPath, mode); err != nil {
		_ = fsys.Remove(tmpPath)
		return newReplaceFileError(path, tmpPath, mode, err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath)
		return newReplaceFileError(path, tmpPath, mode, err)
	}

	return nil
}

func tempFileName(path string) string {
	return filepath.Join(filepath.Dir(path), tempFilePrefix+filepath.Base(path)+"."+uuid.NewString())
}

// matchMode makes sure the file at path has the permission bits mode.
// The umask can strip bits at creation; they are restored through
// billy.Change when the filesystem supports it.
func matchMode(fsys billy.Filesystem, path string, mode os.FileMode) error {
	if change, ok := fsys.(billy.Change); ok {
		if err := change.Chmod(path, mode); err != nil {
			return err
		}
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm() != mode {
		return fmt.Errorf("%w: got %s, want %s", errModeMismatch, info.Mode().Perm(), mode)
	}

	return nil
}

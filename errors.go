package lfx

import (
	"os"

	"github.com/boostgo/errorx"
)

// Error codes. Every error returned by the package carries one of them.
const (
	CodeWalkRoot      = "lfx.walk.root"
	CodeReadDirectory = "lfx.directory.read"
	CodeReadFile      = "lfx.file.read"
	CodeDecodeFile    = "lfx.file.decode"
	CodeOpenFile      = "lfx.file.open"
	CodeWriteFile     = "lfx.file.write"
	CodeReplaceFile   = "lfx.file.replace"
)

type pathErrorContext struct {
	Path  string `json:"path"`
	Error error  `json:"error"`
}

type replaceErrorContext struct {
	Path  string `json:"path"`
	Temp  string `json:"temp"`
	Mode  string `json:"mode"`
	Error error  `json:"error"`
}

func newPathError(code, path string, err error) error {
	return errorx.New(code).
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newWalkRootError(path string, err error) error {
	return newPathError(CodeWalkRoot, path, err)
}

func newReadDirectoryError(path string, err error) error {
	return newPathError(CodeReadDirectory, path, err)
}

func newReadFileError(path string, err error) error {
	return newPathError(CodeReadFile, path, err)
}

func newDecodeFileError(path string, err error) error {
	return newPathError(CodeDecodeFile, path, err)
}

func newOpenFileError(path string, err error) error {
	return newPathError(CodeOpenFile, path, err)
}

func newWriteFileError(path string, err error) error {
	return newPathError(CodeWriteFile, path, err)
}

func newReplaceFileError(path, temp string, mode os.FileMode, err error) error {
	return errorx.New(CodeReplaceFile).
		SetError(err).
		SetData(replaceErrorContext{
			Path:  path,
			Temp:  temp,
			Mode:  mode.String(),
			Error: err,
		})
}

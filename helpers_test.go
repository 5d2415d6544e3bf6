package lfx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// faultFS wraps a filesystem and fails selected operations by path
type faultFS struct {
	billy.Filesystem
	readDirErr map[string]error
	readErr    map[string]error
	writeErr   map[string]error
}

func newFaultFS(fsys billy.Filesystem) *faultFS {
	return &faultFS{
		Filesystem: fsys,
		readDirErr: make(map[string]error),
		readErr:    make(map[string]error),
		writeErr:   make(map[string]error),
	}
}

func (f *faultFS) ReadDir(path string) ([]os.FileInfo, error) {
	if err, ok := f.readDirErr[path]; ok {
		return nil, err
	}
	return f.Filesystem.ReadDir(path)
}

func (f *faultFS) Open(filename string) (billy.File, error) {
	if err, ok := f.readErr[filename]; ok {
		return nil, err
	}
	return f.Filesystem.Open(filename)
}

func (f *faultFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if err, ok := f.writeErr[filename]; ok && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, err
	}
	return f.Filesystem.OpenFile(filename, flag, perm)
}

// newMemTree creates an in-memory filesystem holding files below root
func newMemTree(t *testing.T, root string, files map[string]string) billy.Filesystem {
	t.Helper()

	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	writeTree(t, fsys, root, files)

	return fsys
}

func writeTree(t *testing.T, fsys billy.Filesystem, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, util.WriteFile(fsys, path, []byte(content), 0o644))
	}
}

func readString(t *testing.T, fsys billy.Filesystem, path string) string {
	t.Helper()

	data, err := util.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

// umaskFS clears mask from the permission bits of every created file and
// offers no way to change them afterwards
type umaskFS struct {
	billy.Filesystem
	mask os.FileMode
}

func (f *umaskFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	return f.Filesystem.OpenFile(filename, flag, perm&^f.mask)
}

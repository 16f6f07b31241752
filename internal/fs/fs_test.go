package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	// Test MkdirAll
	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0755))

	// Test OpenFile (Create)
	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, Datasync(f))

	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.NoError(t, f.Close())

	entries, err := lfs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	newPath := filepath.Join(dir, "renamed.txt")
	assert.NoError(t, lfs.Rename(fpath, newPath))

	assert.NoError(t, lfs.Truncate(newPath, 3))
	info3, err := lfs.Stat(newPath)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), info3.Size())

	assert.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, lfs.Mkdir(filepath.Join(dir, "leaf"), 0755))
	assert.NoError(t, lfs.RemoveAll(dir))
	_, err = lfs.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data.bin")

	require.NoError(t, WriteFile(Default, path, []byte("first"), 0644))
	require.NoError(t, WriteFile(Default, path, []byte("second"), 0644))

	got, err := ReadFile(Default, path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not survive")
}

func TestWriteFile_FailureKeepsOriginal(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data.bin")
	require.NoError(t, WriteFile(Default, path, []byte("original"), 0644))

	for name, fault := range map[string]Fault{
		"write":  {FailOnWrite: true},
		"sync":   {FailOnSync: true},
		"rename": {FailOnRename: true},
	} {
		t.Run(name, func(t *testing.T) {
			ffs := NewFaultyFS(nil)
			ffs.AddRule("data.bin", fault)

			err := WriteFile(ffs, path, []byte("replacement"), 0644)
			require.Error(t, err)

			got, err := ReadFile(Default, path)
			require.NoError(t, err)
			assert.Equal(t, "original", string(got))

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestIsEmptyDir(t *testing.T) {
	tmp := t.TempDir()

	empty, err := IsEmptyDir(Default, tmp)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "x"), nil, 0644))
	empty, err = IsEmptyDir(Default, tmp)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = IsEmptyDir(Default, filepath.Join(tmp, "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFaultyFS(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})

	ffs.SetLimit(5) // Fail after 5 bytes

	fpath := filepath.Join(tmp, "faulty.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.Write([]byte("!"))
	assert.Error(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, int64(5), ffs.GetWritten())
	require.NoError(t, f.Close())

	assert.NoError(t, ffs.Rename(fpath, fpath+".renamed"))
	_, err = ffs.Stat(fpath + ".renamed")
	assert.NoError(t, err)
}

func TestFaultyFS_Rules(t *testing.T) {
	tmp := t.TempDir()
	injected := errors.New("permission denied")
	ffs := NewFaultyFS(nil)
	ffs.AddRule("locked", Fault{FailOnOpen: true, FailOnMkdir: true, Err: injected})
	ffs.AddRule("small", Fault{FailAfterBytes: 3})

	_, err := ffs.OpenFile(filepath.Join(tmp, "locked.bin"), os.O_CREATE|os.O_RDWR, 0644)
	assert.ErrorIs(t, err, injected)

	err = ffs.Mkdir(filepath.Join(tmp, "locked"), 0755)
	assert.ErrorIs(t, err, injected)
	err = ffs.MkdirAll(filepath.Join(tmp, "locked", "deeper"), 0755)
	assert.ErrorIs(t, err, injected)

	f, err := ffs.OpenFile(filepath.Join(tmp, "small.bin"), os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte("abc"))
	assert.NoError(t, err)
	_, err = f.Write([]byte("d"))
	assert.Error(t, err)
	require.NoError(t, f.Close())

	// Unmatched paths are delegated untouched.
	assert.NoError(t, ffs.Mkdir(filepath.Join(tmp, "free"), 0755))
	assert.NoError(t, ffs.RemoveAll(filepath.Join(tmp, "free")))
}

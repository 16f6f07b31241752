package fs

import "os"

// Datasync flushes the file's data to stable storage.
//
// On Linux this is fdatasync(2), which skips the metadata-only flush that a
// full fsync performs. Files that are not backed by an *os.File fall back to
// Sync.
func Datasync(f File) error {
	if osf, ok := f.(*os.File); ok {
		return fdatasync(osf)
	}
	return f.Sync()
}

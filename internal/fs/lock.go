package fs

import (
	"errors"
	"os"
)

// ErrLocked is returned by Lock when another process holds the lock.
var ErrLocked = errors.New("file is locked by another process")

// LockFile is an exclusive advisory lock held on an open file.
type LockFile struct {
	f    File
	path string
}

// Lock opens (creating if needed) the file at path and takes an exclusive,
// non-blocking advisory lock on it.
//
// Files that do not expose a descriptor (e.g. in-memory test filesystems)
// are opened but not locked.
func Lock(fsys FileSystem, path string) (*LockFile, error) {
	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	if fd, ok := f.(interface{ Fd() uintptr }); ok {
		if err := lockFd(fd.Fd()); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return &LockFile{f: f, path: path}, nil
}

// Path returns the lock file path.
func (l *LockFile) Path() string { return l.path }

// Unlock releases the lock and closes the file. Safe to call more than once.
func (l *LockFile) Unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	var firstErr error
	if fd, ok := l.f.(interface{ Fd() uintptr }); ok {
		firstErr = unlockFd(fd.Fd())
	}
	if err := l.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	l.f = nil
	return firstErr
}

package orixdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/orixdb/orixdb/internal/hole"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/orixdb/orixdb/internal/resource"
)

// FileMeta is the in-memory state of one data file: its allocated size, the
// reader/writer lock guarding its bytes and its free ranges.
//
// Allocation calls are serialized by an internal mutex, independent of the
// reader/writer lock, so concurrent allocations never return overlapping
// ranges.
type FileMeta struct {
	id   index.ID
	lock *resource.FileLock

	mu    sync.Mutex
	size  uint64
	holes *hole.Allocator
}

func newFileMeta(id index.ID, size uint64) *FileMeta {
	return &FileMeta{
		id:    id,
		lock:  resource.NewFileLock(),
		size:  size,
		holes: hole.New(),
	}
}

// ID returns the data file id.
func (f *FileMeta) ID() index.ID { return f.id }

// Size returns the allocated length of the file.
func (f *FileMeta) Size() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

// Reads returns the number of active readers.
func (f *FileMeta) Reads() uint16 { return f.lock.Reads() }

// Writing reports whether a writer holds the file.
func (f *FileMeta) Writing() bool { return f.lock.Writing() }

// Holes returns the free ranges in ascending offset order.
func (f *FileMeta) Holes() []hole.Hole {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holes.Holes()
}

// FreeBytes returns the total length of all holes.
func (f *FileMeta) FreeBytes() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holes.Total()
}

// AcquireRead waits for shared access to the file's bytes.
func (f *FileMeta) AcquireRead(ctx context.Context) (*resource.ReadGuard, error) {
	return f.lock.RLock(ctx)
}

// AcquireWrite waits until no reader or writer is active and takes
// exclusive access.
func (f *FileMeta) AcquireWrite(ctx context.Context) (*resource.WriteGuard, error) {
	return f.lock.Lock(ctx)
}

// TryAcquireRead takes shared access without waiting. It returns
// [ErrFileBusy] while a writer holds the file.
func (f *FileMeta) TryAcquireRead() (*resource.ReadGuard, error) {
	return f.lock.TryRLock()
}

// TryAcquireWrite takes exclusive access without waiting. It returns
// [ErrFileBusy] while any reader or writer is active.
func (f *FileMeta) TryAcquireWrite() (*resource.WriteGuard, error) {
	return f.lock.TryLock()
}

// Allocate reserves n bytes, reusing the first hole that fits or growing the
// file.
func (f *FileMeta) Allocate(n uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocateLocked(n)
}

func (f *FileMeta) allocateLocked(n uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: zero-length allocation in file %q", ErrInvalidRange, f.id.String())
	}
	if off, ok := f.holes.Reserve(n); ok {
		return off, nil
	}
	off := f.size
	if off+n < off {
		return 0, fmt.Errorf("%w: file %q cannot grow by %d bytes", ErrInvalidRange, f.id.String(), n)
	}
	f.size += n
	return off, nil
}

// Free returns [offset, offset+length) to the file's holes.
func (f *FileMeta) Free(offset, length uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkRangeLocked(offset, length); err != nil {
		return err
	}
	return f.holes.Release(offset, length)
}

// Relocate frees the old range of a value and allocates newLength bytes for
// its replacement in one step. The new range may reuse the old one.
func (f *FileMeta) Relocate(oldOffset, oldLength, newLength uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkRangeLocked(oldOffset, oldLength); err != nil {
		return 0, err
	}
	// Reject what allocateLocked could reject before the old range is freed.
	if newLength == 0 || f.size+newLength < f.size {
		return 0, fmt.Errorf("%w: cannot allocate %d bytes in file %q", ErrInvalidRange, newLength, f.id.String())
	}
	if err := f.holes.Release(oldOffset, oldLength); err != nil {
		return 0, err
	}
	return f.allocateLocked(newLength)
}

func (f *FileMeta) checkRangeLocked(offset, length uint64) error {
	end := offset + length
	if end < offset || end > f.size {
		return fmt.Errorf("%w: [%d, %d+%d) outside file %q of size %d", ErrInvalidRange, offset, offset, length, f.id.String(), f.size)
	}
	return nil
}

package resource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// MaxReaders is the number of concurrent readers a FileLock admits.
const MaxReaders = 1<<16 - 1

// ErrBusy is returned by the Try methods when the lock is not available.
var ErrBusy = errors.New("file is busy")

// FileLock is a reader/writer lock for one data file.
//
// Readers take one unit of a weighted semaphore and the writer takes all of
// them. The semaphore is FIFO, so a waiting writer holds back later readers.
//
// state is -1 while the writer holds the lock and the number of readers
// otherwise, so Reads and Writing never report readers and a writer at once.
type FileLock struct {
	sem   *semaphore.Weighted
	state atomic.Int32
}

// NewFileLock returns an idle lock.
func NewFileLock() *FileLock {
	return &FileLock{sem: semaphore.NewWeighted(MaxReaders)}
}

// Reads returns the number of active readers.
func (l *FileLock) Reads() uint16 {
	if s := l.state.Load(); s > 0 {
		return uint16(s)
	}
	return 0
}

// Writing reports whether the writer holds the lock.
func (l *FileLock) Writing() bool { return l.state.Load() < 0 }

// RLock waits for shared access.
func (l *FileLock) RLock(ctx context.Context) (*ReadGuard, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	l.state.Add(1)
	return &ReadGuard{l: l}, nil
}

// TryRLock takes shared access without waiting.
func (l *FileLock) TryRLock() (*ReadGuard, error) {
	if !l.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	l.state.Add(1)
	return &ReadGuard{l: l}, nil
}

// Lock waits for exclusive access.
func (l *FileLock) Lock(ctx context.Context) (*WriteGuard, error) {
	if err := l.sem.Acquire(ctx, MaxReaders); err != nil {
		return nil, err
	}
	l.state.Store(-1)
	return &WriteGuard{l: l}, nil
}

// TryLock takes exclusive access without waiting.
func (l *FileLock) TryLock() (*WriteGuard, error) {
	if !l.sem.TryAcquire(MaxReaders) {
		return nil, ErrBusy
	}
	l.state.Store(-1)
	return &WriteGuard{l: l}, nil
}

// ReadGuard is held by one reader. Release may be called more than once.
type ReadGuard struct {
	l    *FileLock
	once sync.Once
}

func (g *ReadGuard) Release() {
	g.once.Do(func() {
		g.l.state.Add(-1)
		g.l.sem.Release(1)
	})
}

// WriteGuard is held by the writer. Release may be called more than once.
type WriteGuard struct {
	l    *FileLock
	once sync.Once
}

func (g *WriteGuard) Release() {
	g.once.Do(func() {
		g.l.state.Store(0)
		g.l.sem.Release(MaxReaders)
	})
}

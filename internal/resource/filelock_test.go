package resource

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_States(t *testing.T) {
	l := NewFileLock()
	assert.Zero(t, l.Reads())
	assert.False(t, l.Writing())

	r1, err := l.RLock(t.Context())
	require.NoError(t, err)
	r2, err := l.TryRLock()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), l.Reads())

	_, err = l.TryLock()
	assert.ErrorIs(t, err, ErrBusy)

	r1.Release()
	r1.Release() // idempotent
	assert.Equal(t, uint16(1), l.Reads())
	r2.Release()

	w, err := l.TryLock()
	require.NoError(t, err)
	assert.True(t, l.Writing())
	assert.Zero(t, l.Reads())

	_, err = l.TryRLock()
	assert.ErrorIs(t, err, ErrBusy)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	_, err = l.RLock(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	w.Release()
	w.Release()
	assert.False(t, l.Writing())

	r, err := l.TryRLock()
	require.NoError(t, err)
	r.Release()
}

func TestFileLock_WriterWaitsForReaders(t *testing.T) {
	l := NewFileLock()
	r, err := l.RLock(t.Context())
	require.NoError(t, err)

	acquired := make(chan *WriteGuard)
	go func() {
		w, err := l.Lock(context.Background())
		if err == nil {
			acquired <- w
		}
	}()

	select {
	case <-acquired:
		t.Fatal("writer acquired the lock while a reader was active")
	case <-time.After(20 * time.Millisecond):
	}

	r.Release()
	w := <-acquired
	assert.True(t, l.Writing())
	w.Release()
}

func TestFileLock_NeverReadersAndWriter(t *testing.T) {
	l := NewFileLock()
	var (
		wg       sync.WaitGroup
		writers  atomic.Int32
		readers  atomic.Int32
		violated atomic.Bool
	)

	for i := range 16 {
		wg.Add(1)
		go func(writer bool) {
			defer wg.Done()
			for range 200 {
				if writer {
					g, err := l.Lock(context.Background())
					if err != nil {
						return
					}
					if writers.Add(1) != 1 || readers.Load() != 0 || l.Reads() != 0 {
						violated.Store(true)
					}
					writers.Add(-1)
					g.Release()
					continue
				}
				g, err := l.RLock(context.Background())
				if err != nil {
					return
				}
				readers.Add(1)
				if writers.Load() != 0 || l.Writing() {
					violated.Store(true)
				}
				readers.Add(-1)
				g.Release()
			}
		}(i%4 == 0)
	}
	wg.Wait()

	assert.False(t, violated.Load())
	assert.Zero(t, l.Reads())
	assert.False(t, l.Writing())
}

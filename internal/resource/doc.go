// Package resource implements per-file access control and IO governance.
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         resource                            │
//	├──────────────────────────────┬──────────────────────────────┤
//	│  FileLock (sem, FIFO)        │  Controller                  │
//	├──────────────────────────────┼──────────────────────────────┤
//	│  RLock / TryRLock            │  AcquireLoad / ReleaseLoad   │
//	│  Lock / TryLock              │  AcquireIO (token bucket)    │
//	│  Reads / Writing             │  RateLimitedReader           │
//	└──────────────────────────────┴──────────────────────────────┘
//
// # File Locks
//
// Every data file has one FileLock. Any number of readers may hold it, or a
// single writer:
//
//	g, err := lock.RLock(ctx)
//	if err != nil {
//	    return err
//	}
//	defer g.Release()
//
// # IO Rate Limiting
//
// Index files are read through a token bucket so that loading a large store
// does not starve other readers of the disk:
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//	r := resource.NewRateLimitedReader(ctx, file, rc)
//
// # Nil Safety
//
// All Controller methods handle a nil Controller gracefully; they become
// no-ops.
package resource

package orixdb

import (
	"context"
	"io"
	"os"

	"github.com/orixdb/orixdb/internal/fs"
	"github.com/orixdb/orixdb/internal/manifest"
)

// Confirmer asks the operator whether a store written by a newer engine
// version may be opened anyway.
type Confirmer interface {
	Confirm(ctx context.Context, store, engine manifest.Version) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, store, engine manifest.Version) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, store, engine manifest.Version) (bool, error) {
	return f(ctx, store, engine)
}

// Decline is the default Confirmer: it never opens a newer store.
var Decline Confirmer = ConfirmFunc(func(context.Context, manifest.Version, manifest.Version) (bool, error) {
	return false, nil
})

// Accept always opens a newer store.
var Accept Confirmer = ConfirmFunc(func(context.Context, manifest.Version, manifest.Version) (bool, error) {
	return true, nil
})

// Overrides replace the manifest's instance defaults for one Open.
// Empty port strings and a nil Verbose keep the manifest value.
type Overrides struct {
	APIPort     string // port spec, e.g. "7900" or "7900..."
	ClusterPort string
	Verbose     *bool
}

type options struct {
	fs                 fs.FileSystem
	logger             *Logger
	metricsCollector   MetricsCollector
	confirmer          Confirmer
	engine             manifest.Version
	ioLimit            int64
	maxConcurrentLoads int64
	overrides          Overrides
	output             io.Writer
}

// Option configures Create and Open.
type Option func(*options)

// WithFileSystem replaces the file system used for every store access.
// Tests use it to inject faults. If nil is passed, the local file system is
// used.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}

// WithLogger configures structured logging.
// Without it, Open logs at the level named in the store's manifest.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
//	metrics := &orixdb.BasicMetricsCollector{}
//	st, _ := orixdb.Open(ctx, dir, orixdb.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithConfirmer sets who decides whether a store written by a newer engine
// is opened. The default declines.
func WithConfirmer(c Confirmer) Option {
	return func(o *options) {
		if c == nil {
			c = Decline
		}
		o.confirmer = c
	}
}

// WithEngineVersion overrides the engine version used by the version gate
// and recorded in new manifests.
func WithEngineVersion(v manifest.Version) Option {
	return func(o *options) {
		o.engine = v
	}
}

// WithIOLimit throttles index reads to bytesPerSec. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithMaxConcurrentLoads bounds how many index files are decoded at once.
func WithMaxConcurrentLoads(n int64) Option {
	return func(o *options) {
		o.maxConcurrentLoads = n
	}
}

// WithOverrides sets serve-time port and verbosity overrides.
func WithOverrides(ov Overrides) Option {
	return func(o *options) {
		o.overrides = ov
	}
}

// WithLogOutput sets where the logger Open derives from the manifest writes,
// including version skew warnings. Defaults to os.Stderr. It has no effect
// together with WithLogger.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = os.Stderr
		}
		o.output = w
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		output:           os.Stderr,
		fs:               fs.Default,
		metricsCollector: NoopMetricsCollector{},
		confirmer:        Decline,
		engine:           manifest.EngineVersion,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

package orixdb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orixdb/orixdb/internal/fs"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/orixdb/orixdb/internal/layout"
	"github.com/orixdb/orixdb/internal/manifest"
	"github.com/orixdb/orixdb/internal/port"
	"github.com/orixdb/orixdb/internal/resource"
)

// CreateParams describe a new store. Zero values select the defaults: the
// folder name as Name, the slug of Name as ID, a live store with
// checksumming on, normal logging and ports 7900 and 7979.
type CreateParams struct {
	Name         string
	ID           string
	Type         string // live, lite, backup or archive
	Ordering     bool
	Checksumming *bool
	Logging      string // off, minimal, normal or detailed
	Verbose      bool
	APIPort      string // port spec
	ClusterPort  string // port spec
}

// Create initializes a new store in dir (the current directory if empty) and
// returns its manifest. dir must not exist or be empty.
func Create(ctx context.Context, dir string, params CreateParams, optFns ...Option) (m *manifest.Manifest, err error) {
	o := applyOptions(optFns)
	logger := o.logger
	if logger == nil {
		logger = NoopLogger()
	}

	start := time.Now()
	defer func() {
		o.metricsCollector.RecordCreate(time.Since(start), err)
	}()

	root, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}

	m, err = buildManifest(root, params, o.engine)
	if err != nil {
		logger.LogInitialize(ctx, root, params.ID, err)
		return nil, err
	}

	err = layout.Initialize(o.fs, root, m)
	logger.LogInitialize(ctx, root, m.ID, err)
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func buildManifest(root string, params CreateParams, engine manifest.Version) (*manifest.Manifest, error) {
	name := params.Name
	if name == "" {
		name = filepath.Base(root)
	}
	id := params.ID
	if id == "" {
		id = manifest.Slugify(name)
	}
	if !manifest.ValidID(id) {
		return nil, fmt.Errorf("%w: store id %q must contain only lowercase alphanumeric characters, dashes and underscores", ErrInvalidManifest, id)
	}

	m := manifest.New(name, id)
	m.Version = engine
	m.Ordering = params.Ordering
	m.Defaults.Verbosity = params.Verbose
	if params.Checksumming != nil {
		m.Checksumming = *params.Checksumming
	}

	if params.Type != "" {
		kind, err := manifest.ParseStoreType(params.Type)
		if err != nil {
			return nil, err
		}
		m.Kind = kind
	}
	if params.Logging != "" {
		level, err := manifest.ParseLogLevel(params.Logging)
		if err != nil {
			return nil, err
		}
		m.Logging = level
	}

	if params.APIPort != "" {
		spec, err := port.Parse(params.APIPort, "api port")
		if err != nil {
			return nil, err
		}
		m.Defaults.APIPort, m.Defaults.APIScan = spec.Port, spec.Scan
	}
	if params.ClusterPort != "" {
		spec, err := port.Parse(params.ClusterPort, "cluster port")
		if err != nil {
			return nil, err
		}
		m.Defaults.ClusterPort, m.Defaults.ClusterScan = spec.Port, spec.Scan
	}

	if err := manifest.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Open loads the store in dir (the current directory if empty).
//
// The manifest is loaded and gated before anything else: backup and archive
// stores and stores of another major version are rejected, an older minor
// version is logged, a newer one must be accepted by the Confirmer or Open
// returns ErrDeclined. Version skew is logged even when the manifest turns
// logging off, and is available afterwards from Store.VersionSkew. Then the
// layout is validated, the store lock is taken and the indices are decoded
// concurrently: singletons and collections first, then the item index of
// every registered collection.
func Open(ctx context.Context, dir string, optFns ...Option) (st *Store, err error) {
	o := applyOptions(optFns)

	start := time.Now()
	logger := o.logger
	defer func() {
		o.metricsCollector.RecordOpen(time.Since(start), err)
	}()

	root, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	if info, statErr := o.fs.Stat(root); statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}
	l := layout.Paths(root)

	m, err := manifest.Load(o.fs, l.Manifest)
	if err != nil {
		return nil, err
	}

	verbose := m.Defaults.Verbosity
	if o.overrides.Verbose != nil {
		verbose = *o.overrides.Verbose
	}
	if logger == nil {
		logger = loggerFor(m.Logging, verbose, o.output)
	}
	logger = logger.WithStore(m.ID)
	defer func() {
		if !errors.Is(err, ErrDeclined) {
			logger.LogOpen(ctx, root, m.Kind, time.Since(start), err)
		}
	}()

	if err := manifest.CheckServable(m.Kind); err != nil {
		return nil, err
	}
	skewLogger := logger
	if o.logger == nil && !logger.Enabled(ctx, slog.LevelWarn) {
		skewLogger = NewLogger(slog.NewTextHandler(o.output, &slog.HandlerOptions{Level: slog.LevelWarn})).WithStore(m.ID)
	}
	skew, err := gate(ctx, m.Version, o, skewLogger)
	if err != nil {
		return nil, err
	}

	if err := layout.Validate(o.fs, root); err != nil {
		return nil, err
	}

	ports, err := resolvePorts(m, o.overrides)
	if err != nil {
		return nil, err
	}

	lock, err := fs.Lock(o.fs, l.Lock)
	if err != nil {
		return nil, translateError(err)
	}
	defer func() {
		if err != nil {
			_ = lock.Unlock()
		}
	}()

	s, c, items, err := loadIndexes(ctx, o, l, logger)
	if err != nil {
		return nil, translateError(err)
	}

	fileTables := []map[index.ID]uint64{s.Files, c.Files}
	entryTables := []map[index.ID]index.Entry{s.Entries, c.Entries}
	for _, it := range items {
		fileTables = append(fileTables, it.Files)
		entryTables = append(entryTables, it.Entries)
	}
	files, err := index.MergeFiles(fileTables...)
	if err != nil {
		return nil, translateError(err)
	}
	if err := index.Check(files, entryTables...); err != nil {
		return nil, translateError(err)
	}

	st = &Store{
		manifest:    m,
		layout:      l,
		ports:       ports,
		verbose:     verbose,
		skew:        skew,
		logger:      logger,
		singletons:  s,
		collections: c,
		items:       items,
		files:       make(map[index.ID]*FileMeta, len(files)),
		lock:        lock,
	}
	for id, size := range files {
		st.files[id] = newFileMeta(id, size)
	}
	return st, nil
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrDirectoryNotFound, err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDirectoryNotFound, err)
	}
	return abs, nil
}

func gate(ctx context.Context, store manifest.Version, o options, logger *Logger) (manifest.Decision, error) {
	decision, err := manifest.Gate(store, o.engine)
	if err != nil {
		return decision, err
	}
	logger.LogVersionSkew(ctx, store, o.engine, decision)
	if decision != manifest.DecisionConfirm {
		return decision, nil
	}
	ok, err := o.confirmer.Confirm(ctx, store, o.engine)
	if err != nil {
		return decision, fmt.Errorf("confirm version %s: %w", store, err)
	}
	if !ok {
		return decision, fmt.Errorf("%w: store version %s is newer than engine version %s", ErrDeclined, store, o.engine)
	}
	return decision, nil
}

func resolvePorts(m *manifest.Manifest, ov Overrides) (Ports, error) {
	p := Ports{
		API:     port.Spec{Port: m.Defaults.APIPort, Scan: m.Defaults.APIScan},
		Cluster: port.Spec{Port: m.Defaults.ClusterPort, Scan: m.Defaults.ClusterScan},
	}
	if ov.APIPort != "" {
		spec, err := port.Parse(ov.APIPort, "api port")
		if err != nil {
			return Ports{}, err
		}
		p.API = spec
	}
	if ov.ClusterPort != "" {
		spec, err := port.Parse(ov.ClusterPort, "cluster port")
		if err != nil {
			return Ports{}, err
		}
		p.Cluster = spec
	}
	return p, nil
}

func loadIndexes(ctx context.Context, o options, l layout.Layout, logger *Logger) (*index.Singletons, *index.Collections, map[index.ID]*index.Singletons, error) {
	rc := resource.NewController(resource.Config{
		IOLimitBytesPerSec: o.ioLimit,
		MaxConcurrentLoads: o.maxConcurrentLoads,
	})

	var (
		s *index.Singletons
		c *index.Collections
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loadIndex(gctx, o, rc, logger, "singletons", l.Singletons, func(r *bufio.Reader) (int, int, error) {
			var err error
			s, err = index.DecodeSingletons(r, l.Singletons)
			if err != nil {
				return 0, 0, err
			}
			return len(s.Files), len(s.Entries), nil
		})
	})
	g.Go(func() error {
		return loadIndex(gctx, o, rc, logger, "collections", l.Collections, func(r *bufio.Reader) (int, int, error) {
			var err error
			c, err = index.DecodeCollections(r, l.Collections)
			if err != nil {
				return 0, 0, err
			}
			return len(c.Files), len(c.Entries), nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	var mu sync.Mutex
	items := make(map[index.ID]*index.Singletons, len(c.Registry))
	g, gctx = errgroup.WithContext(ctx)
	for cid := range c.Registry {
		path := l.CollectionIndex(cid)
		if _, err := o.fs.Stat(path); errors.Is(err, os.ErrNotExist) {
			mu.Lock()
			items[cid] = index.NewSingletons()
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			return loadIndex(gctx, o, rc, logger, "items", path, func(r *bufio.Reader) (int, int, error) {
				it, err := index.DecodeSingletons(r, path)
				if err != nil {
					return 0, 0, err
				}
				mu.Lock()
				items[cid] = it
				mu.Unlock()
				return len(it.Files), len(it.Entries), nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return s, c, items, nil
}

func loadIndex(ctx context.Context, o options, rc *resource.Controller, logger *Logger, kind, path string, decode func(*bufio.Reader) (int, int, error)) (err error) {
	start := time.Now()
	var files, entries int
	defer func() {
		o.metricsCollector.RecordIndexLoad(kind, entries, time.Since(start), err)
		logger.LogIndexLoaded(ctx, kind, path, files, entries, time.Since(start), err)
	}()

	if err := rc.AcquireLoad(ctx); err != nil {
		return err
	}
	defer rc.ReleaseLoad()

	f, err := o.fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", index.ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	files, entries, err = decode(bufio.NewReader(resource.NewRateLimitedReader(ctx, f, rc)))
	return err
}

package orixdb

import (
	"maps"
	"slices"
	"sync"

	"github.com/orixdb/orixdb/internal/fs"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/orixdb/orixdb/internal/layout"
	"github.com/orixdb/orixdb/internal/manifest"
	"github.com/orixdb/orixdb/internal/port"
)

// Ports are the resolved serving ports of an open store.
type Ports struct {
	API     port.Spec
	Cluster port.Spec
}

// Store is an open store: its manifest, resolved serve settings and the
// decoded indices. It holds the store lock until Close.
type Store struct {
	manifest *manifest.Manifest
	layout   layout.Layout
	ports    Ports
	verbose  bool
	skew     manifest.Decision
	logger   *Logger

	singletons  *index.Singletons
	collections *index.Collections
	items       map[index.ID]*index.Singletons // collection id -> item index
	files       map[index.ID]*FileMeta

	mu   sync.Mutex
	lock *fs.LockFile
}

// Stats summarizes the loaded indices.
type Stats struct {
	Files             int
	Singletons        int
	Collections       int
	CollectionRecords int // collection-level entries
	CollectionItems   int
	BytesAllocated    uint64 // sum of data file sizes
	BytesReferenced   uint64 // sum of entry lengths
	BytesFree         uint64 // sum of hole lengths
}

// Manifest returns a copy of the store manifest.
func (s *Store) Manifest() manifest.Manifest { return *s.manifest }

// Root returns the absolute store directory.
func (s *Store) Root() string { return s.layout.Root }

// Ports returns the resolved serving ports.
func (s *Store) Ports() Ports { return s.ports }

// Verbose reports whether verbose output was requested.
func (s *Store) Verbose() bool { return s.verbose }

// VersionSkew returns the outcome of the version gate: DecisionWarn for a
// store written by an older minor version, DecisionConfirm for a newer one
// that was accepted.
func (s *Store) VersionSkew() manifest.Decision { return s.skew }

// Logger returns the store's logger.
func (s *Store) Logger() *Logger { return s.logger }

// Singletons returns a copy of the singleton entries keyed by entity id.
func (s *Store) Singletons() map[index.ID]index.Entry {
	return maps.Clone(s.singletons.Entries)
}

// Singleton returns the location of one singleton.
func (s *Store) Singleton(id index.ID) (index.Entry, bool) {
	e, ok := s.singletons.Entries[id]
	return e, ok
}

// Collections returns a copy of the collection registry.
func (s *Store) Collections() map[index.ID]string {
	return maps.Clone(s.collections.Registry)
}

// CollectionRecords returns a copy of the collection-level entries of the
// collections index keyed by entity id.
func (s *Store) CollectionRecords() map[index.ID]index.Entry {
	return maps.Clone(s.collections.Entries)
}

// CollectionItems returns a copy of the items of collection cid keyed by
// entity id, or false if the collection is not registered.
func (s *Store) CollectionItems(cid index.ID) (map[index.ID]index.Entry, bool) {
	it, ok := s.items[cid]
	if !ok {
		return nil, false
	}
	return maps.Clone(it.Entries), true
}

// CollectionItem returns the location of one item of collection cid.
func (s *Store) CollectionItem(cid, id index.ID) (index.Entry, bool) {
	it, ok := s.items[cid]
	if !ok {
		return index.Entry{}, false
	}
	e, ok := it.Entries[id]
	return e, ok
}

// File returns the metadata of one data file.
func (s *Store) File(id index.ID) (*FileMeta, bool) {
	f, ok := s.files[id]
	return f, ok
}

// Files returns the data file ids in ascending order.
func (s *Store) Files() []index.ID {
	ids := slices.Collect(maps.Keys(s.files))
	slices.SortFunc(ids, index.ID.Compare)
	return ids
}

// Stats summarizes the loaded indices.
func (s *Store) Stats() Stats {
	st := Stats{
		Files:             len(s.files),
		Singletons:        len(s.singletons.Entries),
		Collections:       len(s.collections.Registry),
		CollectionRecords: len(s.collections.Entries),
	}
	for _, f := range s.files {
		st.BytesAllocated += f.Size()
		st.BytesFree += f.FreeBytes()
	}
	for _, e := range s.singletons.Entries {
		st.BytesReferenced += e.Length
	}
	for _, e := range s.collections.Entries {
		st.BytesReferenced += e.Length
	}
	for _, it := range s.items {
		st.CollectionItems += len(it.Entries)
		for _, e := range it.Entries {
			st.BytesReferenced += e.Length
		}
	}
	return st
}

// Close releases the store lock. It is safe to call more than once.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	s.lock = nil
	s.logger.Debug("store closed", "root", s.layout.Root)
	return err
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock == nil
}

package testutil

import (
	"math/rand"
	"sync"

	"github.com/orixdb/orixdb/internal/index"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Uint64n returns a pseudo-random number in [0,n).
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uint64nLocked(n)
}

func (r *RNG) uint64nLocked(n uint64) uint64 {
	return uint64(r.rand.Int63n(int64(n)))
}

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789-_"

// ID returns a random printable 12-byte id.
func (r *RNG) ID() index.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idLocked()
}

func (r *RNG) idLocked() index.ID {
	var id index.ID
	for i := range id {
		id[i] = alphabet[r.rand.Intn(len(alphabet))]
	}
	return id
}

// Name returns a random UTF-8 name of at most maxLen bytes. Names mix ASCII
// and multi-byte runes.
func (r *RNG) Name(maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nameLocked(maxLen)
}

var nameRunes = []rune("abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789äöüßéπ世界")

func (r *RNG) nameLocked(maxLen int) string {
	n := r.rand.Intn(maxLen + 1)
	b := make([]byte, 0, n)
	for {
		ru := string(nameRunes[r.rand.Intn(len(nameRunes))])
		if len(b)+len(ru) > n {
			return string(b)
		}
		b = append(b, ru...)
	}
}

// layoutLocked packs count entries into the given files without overlap and
// returns the resulting file sizes and entries.
func (r *RNG) layoutLocked(fileCount, count int) (map[index.ID]uint64, map[index.ID]index.Entry) {
	files := make(map[index.ID]uint64, fileCount)
	ids := make([]index.ID, 0, fileCount)
	for len(ids) < fileCount {
		id := r.idLocked()
		if _, dup := files[id]; dup {
			continue
		}
		files[id] = 0
		ids = append(ids, id)
	}

	entries := make(map[index.ID]index.Entry, count)
	for len(entries) < count && fileCount > 0 {
		id := r.idLocked()
		if _, dup := entries[id]; dup {
			continue
		}
		file := ids[r.rand.Intn(len(ids))]
		gap := r.uint64nLocked(64)
		e := index.Entry{
			Name:     r.nameLocked(40),
			DataType: uint8(r.rand.Intn(256)),
			File:     file,
			Offset:   files[file] + gap,
			Length:   r.uint64nLocked(4096),
		}
		files[file] = e.Offset + e.Length
		entries[id] = e
	}

	// Leave some slack at the end of a few files.
	for _, id := range ids {
		if r.rand.Intn(2) == 0 {
			files[id] += r.uint64nLocked(1024)
		}
	}
	return files, entries
}

// Singletons returns a random, consistent singletons table.
func (r *RNG) Singletons(fileCount, count int) *index.Singletons {
	r.mu.Lock()
	defer r.mu.Unlock()
	files, entries := r.layoutLocked(fileCount, count)
	return &index.Singletons{Files: files, Entries: entries}
}

// Collections returns a random, consistent collections table with collCount
// registered collections and count collection-level entries.
func (r *RNG) Collections(fileCount, collCount, count int) *index.Collections {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := index.NewCollections()
	for len(c.Registry) < collCount {
		id := r.idLocked()
		if _, dup := c.Registry[id]; dup {
			continue
		}
		c.Registry[id] = r.nameLocked(30)
	}
	c.Files, c.Entries = r.layoutLocked(fileCount, count)
	return c
}

// Package testutil provides testing utilities for orixdb.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe RNG and generators for ids, names and index tables.
//
// # Random Index Tables
//
//	rng := testutil.NewRNG(seed)
//	s := rng.Singletons(3, 50)   // 3 data files, 50 entries
//	c := rng.Collections(3, 4, 50)
//
// Generated tables always pass index.Check: entries are laid out in their
// data files without overlapping.
package testutil

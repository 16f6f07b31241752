// Package orixdb opens and creates orixdb stores.
//
// A store is a directory holding a JSON manifest and two binary indices
// (singletons/rixindex and collections/rixindex) that locate every value
// inside the store's data files.
//
// # Quick Start
//
//	ctx := context.Background()
//	m, _ := orixdb.Create(ctx, "./orders", orixdb.CreateParams{})
//	st, _ := orixdb.Open(ctx, "./orders")
//	defer st.Close()
//
//	fmt.Println(m.ID, st.Ports().API)
//
// # Version Gate
//
// Open compares the manifest version with the engine version. A different
// major version fails with ErrStoreTooOld or ErrEngineTooOld. An older minor
// version is logged and opened. A newer minor version is only opened if the
// Confirmer accepts it; the default declines and Open returns ErrDeclined,
// which callers should treat as a clean exit rather than a failure.
//
// # Serving Overrides
//
// Ports and verbosity default to the manifest and can be overridden per
// Open:
//
//	st, _ := orixdb.Open(ctx, dir, orixdb.WithOverrides(orixdb.Overrides{
//	    APIPort: "9000...", // 9000, try higher ports if busy
//	}))
//
// # Concurrency
//
// Open is synchronous apart from decoding the two indices in parallel. The
// returned Store is read-only and safe for concurrent use; each FileMeta
// carries a reader/writer lock and serializes its own free-space
// allocations.
//
// # Errors
//
// Every failure matches one of the exported Err* values through errors.Is.
// The original cause, such as a *CorruptError naming the file and byte
// offset, stays reachable through errors.As.
package orixdb

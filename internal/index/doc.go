// Package index implements the rixindex binary format.
//
// A store keeps two index files: singletons/rixindex for top-level values and
// collections/rixindex for collection items. Both start with a file table and
// end with an entry table; the collections file carries a collections list in
// between. All integers are big-endian and there is no header:
//
//	file table:    u64 count, count × [12 file id][u64 size]
//	collections:   u64 count, count × [12 collection id][u8 len][name]
//	entry table:   u64 count, count × [u8 len][name][12 entity id][u8 type]
//	               [12 file id][u64 offset][u64 length]
//
// Entries in the collections file are prefixed with the 12-byte id of the
// collection they belong to.
//
// Decoding is streaming and all-or-nothing: any malformed record yields a
// *CorruptError and no partial table.
package index

package index

// Entry locates the bytes of one entity inside a data file.
type Entry struct {
	Name     string
	DataType uint8
	File     ID
	Offset   uint64
	Length   uint64
}

// End returns the first byte after the entry and false if the range
// overflows.
func (e Entry) End() (uint64, bool) {
	end := e.Offset + e.Length
	return end, end >= e.Offset
}

// Singletons is the decoded singletons/rixindex file.
type Singletons struct {
	Files   map[ID]uint64 // data file id -> size
	Entries map[ID]Entry  // entity id -> location
}

// NewSingletons returns an empty table.
func NewSingletons() *Singletons {
	return &Singletons{
		Files:   make(map[ID]uint64),
		Entries: make(map[ID]Entry),
	}
}

// Check verifies that every entry fits inside its data file and that no two
// entries overlap.
func (s *Singletons) Check() error {
	return Check(s.Files, s.Entries)
}

// Collections is the decoded collections/rixindex file: the collection
// registry and the collection-level entries. The items of each collection
// are kept in a separate index with the singletons layout.
type Collections struct {
	Files    map[ID]uint64 // data file id -> size
	Registry map[ID]string // collection id -> display name
	Entries  map[ID]Entry  // entity id -> location
}

// NewCollections returns an empty table.
func NewCollections() *Collections {
	return &Collections{
		Files:    make(map[ID]uint64),
		Registry: make(map[ID]string),
		Entries:  make(map[ID]Entry),
	}
}

// Check verifies the entries against the file table like Singletons.Check.
func (c *Collections) Check() error {
	return Check(c.Files, c.Entries)
}

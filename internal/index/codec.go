package index

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/orixdb/orixdb/internal/fs"
)

// DecodeSingletons reads a singletons index from r. path is only used in
// errors.
func DecodeSingletons(r io.Reader, path string) (*Singletons, error) {
	d := newDecoder(r, path)
	s := &Singletons{Files: d.fileTable()}
	s.Entries = d.entryTable()
	d.expectEOF()
	if d.err != nil {
		return nil, d.err
	}
	return s, nil
}

// DecodeCollections reads a collections index from r. path is only used in
// errors.
func DecodeCollections(r io.Reader, path string) (*Collections, error) {
	d := newDecoder(r, path)
	c := &Collections{Files: d.fileTable()}
	c.Registry = d.collectionList()
	c.Entries = d.entryTable()
	d.expectEOF()
	if d.err != nil {
		return nil, d.err
	}
	return c, nil
}

func (d *decoder) fileTable() map[ID]uint64 {
	count := d.readUint64("file count")
	files := make(map[ID]uint64, sizeHint(count))
	for i := uint64(0); i < count && d.err == nil; i++ {
		at := d.off
		id := d.readID("file id")
		size := d.readUint64("file size")
		if d.err != nil {
			break
		}
		if _, dup := files[id]; dup {
			d.fail(at, fmt.Sprintf("duplicate file id %q", id.String()), nil)
			break
		}
		files[id] = size
	}
	return files
}

func (d *decoder) collectionList() map[ID]string {
	count := d.readUint64("collection count")
	registry := make(map[ID]string, sizeHint(count))
	for i := uint64(0); i < count && d.err == nil; i++ {
		at := d.off
		id := d.readID("collection id")
		name := d.readName("collection name")
		if d.err != nil {
			break
		}
		if _, dup := registry[id]; dup {
			d.fail(at, fmt.Sprintf("duplicate collection id %q", id.String()), nil)
			break
		}
		registry[id] = name
	}
	return registry
}

func (d *decoder) entryTable() map[ID]Entry {
	count := d.readUint64("entry count")
	entries := make(map[ID]Entry, sizeHint(count))
	for i := uint64(0); i < count && d.err == nil; i++ {
		at := d.off
		id, e := d.entry()
		if d.err != nil {
			break
		}
		if _, dup := entries[id]; dup {
			d.fail(at, fmt.Sprintf("duplicate entity id %q", id.String()), nil)
			break
		}
		entries[id] = e
	}
	return entries
}

func (d *decoder) entry() (ID, Entry) {
	var e Entry
	e.Name = d.readName("entry name")
	id := d.readID("entity id")
	e.DataType = d.readUint8("data type")
	e.File = d.readID("entry file id")
	e.Offset = d.readUint64("entry offset")
	e.Length = d.readUint64("entry length")
	return id, e
}

// EncodeSingletons writes s to w with records sorted by id.
func EncodeSingletons(w io.Writer, s *Singletons) error {
	if s == nil {
		s = NewSingletons()
	}
	e := &encoder{}
	e.fileTable(s.Files)
	e.writeUint64(uint64(len(s.Entries)))
	for _, id := range sortedKeys(s.Entries) {
		e.entry(id, s.Entries[id])
	}
	return e.flushTo(w)
}

// EncodeCollections writes c to w with records sorted by id.
func EncodeCollections(w io.Writer, c *Collections) error {
	if c == nil {
		c = NewCollections()
	}
	e := &encoder{}
	e.fileTable(c.Files)
	e.writeUint64(uint64(len(c.Registry)))
	for _, id := range sortedKeys(c.Registry) {
		e.writeID(id)
		e.writeName(c.Registry[id])
	}
	e.writeUint64(uint64(len(c.Entries)))
	for _, id := range sortedKeys(c.Entries) {
		e.entry(id, c.Entries[id])
	}
	return e.flushTo(w)
}

func (e *encoder) fileTable(files map[ID]uint64) {
	e.writeUint64(uint64(len(files)))
	for _, id := range sortedKeys(files) {
		e.writeID(id)
		e.writeUint64(files[id])
	}
}

func (e *encoder) entry(id ID, en Entry) {
	e.writeName(en.Name)
	e.writeID(id)
	e.writeUint8(en.DataType)
	e.writeID(en.File)
	e.writeUint64(en.Offset)
	e.writeUint64(en.Length)
}

// flushTo writes the buffered payload in one call, so a failed encoding
// leaves w untouched.
func (e *encoder) flushTo(w io.Writer) error {
	if e.err != nil {
		return e.err
	}
	_, err := w.Write(e.buf)
	return err
}

func sortedKeys[V any](m map[ID]V) []ID {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, ID.Compare)
	return keys
}

// ReadSingletons decodes the singletons index at path.
func ReadSingletons(fsys fs.FileSystem, path string) (*Singletons, error) {
	var s *Singletons
	err := readFile(fsys, path, func(r io.Reader) (err error) {
		s, err = DecodeSingletons(r, path)
		return err
	})
	return s, err
}

// ReadCollections decodes the collections index at path.
func ReadCollections(fsys fs.FileSystem, path string) (*Collections, error) {
	var c *Collections
	err := readFile(fsys, path, func(r io.Reader) (err error) {
		c, err = DecodeCollections(r, path)
		return err
	})
	return c, err
}

func readFile(fsys fs.FileSystem, path string, decode func(io.Reader) error) error {
	if fsys == nil {
		fsys = fs.Default
	}
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()
	return decode(f)
}

// WriteSingletons atomically replaces the singletons index at path.
func WriteSingletons(fsys fs.FileSystem, path string, s *Singletons) error {
	var buf bytes.Buffer
	if err := EncodeSingletons(&buf, s); err != nil {
		return err
	}
	return writeFile(fsys, path, buf.Bytes())
}

// WriteCollections atomically replaces the collections index at path.
func WriteCollections(fsys fs.FileSystem, path string, c *Collections) error {
	var buf bytes.Buffer
	if err := EncodeCollections(&buf, c); err != nil {
		return err
	}
	return writeFile(fsys, path, buf.Bytes())
}

func writeFile(fsys fs.FileSystem, path string, data []byte) error {
	if fsys == nil {
		fsys = fs.Default
	}
	if err := fs.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write index %s: %w", path, err)
	}
	return nil
}

package index

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// maxPrealloc bounds map size hints taken from untrusted counts.
const maxPrealloc = 4096

// decoder reads big-endian records and remembers the first failure. Methods
// are no-ops once err is set.
type decoder struct {
	r    *bufio.Reader
	path string
	off  int64
	err  error
	buf  [8]byte
}

func newDecoder(r io.Reader, path string) *decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &decoder{r: br, path: path}
}

func (d *decoder) fail(at int64, msg string, err error) {
	if d.err != nil {
		return
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = fmt.Errorf("%w: %s at offset %d: %w", ErrUnreadable, d.path, at, err)
		return
	}
	d.err = &CorruptError{Path: d.path, Offset: at, Msg: msg, Err: err}
}

func (d *decoder) read(p []byte, what string) bool {
	if d.err != nil {
		return false
	}
	at := d.off
	n, err := io.ReadFull(d.r, p)
	d.off += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		d.fail(at, "short read of "+what, err)
		return false
	}
	return true
}

func (d *decoder) readUint64(what string) uint64 {
	if !d.read(d.buf[:8], what) {
		return 0
	}
	return binary.BigEndian.Uint64(d.buf[:8])
}

func (d *decoder) readUint8(what string) uint8 {
	if !d.read(d.buf[:1], what) {
		return 0
	}
	return d.buf[0]
}

func (d *decoder) readID(what string) ID {
	var id ID
	at := d.off
	if !d.read(id[:], what) {
		return id
	}
	if !id.Valid() {
		d.fail(at, what+" is not valid UTF-8", nil)
	}
	return id
}

func (d *decoder) readName(what string) string {
	at := d.off
	n := d.readUint8(what + " length")
	if d.err != nil {
		return ""
	}
	b := make([]byte, n)
	if !d.read(b, what) {
		return ""
	}
	if !utf8.Valid(b) {
		d.fail(at, what+" is not valid UTF-8", nil)
		return ""
	}
	return string(b)
}

// expectEOF fails unless the stream ends exactly here.
func (d *decoder) expectEOF() {
	if d.err != nil {
		return
	}
	_, err := d.r.ReadByte()
	switch {
	case err == nil:
		d.fail(d.off, "trailing bytes after entry table", nil)
	case errors.Is(err, io.EOF):
	default:
		d.fail(d.off, "", err)
	}
}

func sizeHint(count uint64) int {
	if count > maxPrealloc {
		return maxPrealloc
	}
	return int(count)
}

// encoder appends big-endian records to buf and remembers the first
// failure.
type encoder struct {
	buf []byte
	err error
}

func (e *encoder) writeUint64(v uint64) {
	if e.err != nil {
		return
	}
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
}

func (e *encoder) writeUint8(v uint8) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, v)
}

func (e *encoder) writeID(id ID) {
	if e.err != nil {
		return
	}
	if !id.Valid() {
		e.err = fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidID, id[:])
		return
	}
	e.buf = append(e.buf, id[:]...)
}

func (e *encoder) writeName(s string) {
	if e.err != nil {
		return
	}
	if len(s) > 255 {
		e.err = fmt.Errorf("%w: %d bytes (max 255)", ErrNameTooLong, len(s))
		return
	}
	if !utf8.ValidString(s) {
		e.err = fmt.Errorf("%w: %q", ErrInvalidName, s)
		return
	}
	e.buf = append(e.buf, uint8(len(s)))
	e.buf = append(e.buf, s...)
}

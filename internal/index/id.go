package index

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"unicode/utf8"
)

// IDLen is the fixed width of every id in the index.
const IDLen = 12

// ID is a fixed-width identifier naming an entity, a collection or a data
// file.
type ID [IDLen]byte

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ParseID converts s to an ID. s must be exactly 12 bytes of valid UTF-8.
func ParseID(s string) (ID, error) {
	var id ID
	if len(s) != IDLen {
		return id, fmt.Errorf("%w: %q is %d bytes, want %d", ErrInvalidID, s, len(s), IDLen)
	}
	if !utf8.ValidString(s) {
		return id, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidID, s)
	}
	copy(id[:], s)
	return id, nil
}

// MustParseID is like ParseID but panics on error.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewID returns a random id of lowercase ASCII letters and digits.
func NewID() ID {
	var raw [IDLen]byte
	// crypto/rand.Read never returns an error.
	_, _ = rand.Read(raw[:])
	var id ID
	for i, b := range raw {
		id[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return id
}

func (id ID) String() string { return string(id[:]) }

// Valid reports whether id is valid UTF-8.
func (id ID) Valid() bool { return utf8.Valid(id[:]) }

// Compare orders ids bytewise.
func (id ID) Compare(o ID) int { return bytes.Compare(id[:], o[:]) }

func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidID, id[:])
	}
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	v, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

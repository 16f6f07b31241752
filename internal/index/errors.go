package index

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is matched by every *CorruptError.
	ErrCorrupt = errors.New("index corrupt")

	// ErrUnreadable is returned when the index file cannot be opened or read.
	ErrUnreadable = errors.New("index unreadable")

	// ErrInconsistent is returned by Check when entries do not fit the file
	// table.
	ErrInconsistent = errors.New("index inconsistent")

	// ErrNameTooLong is returned when encoding a name longer than 255 bytes.
	ErrNameTooLong = errors.New("name too long")

	// ErrInvalidName is returned when encoding a name that is not valid UTF-8.
	ErrInvalidName = errors.New("name is not valid UTF-8")

	// ErrInvalidID is returned for ids that are not 12 bytes of valid UTF-8.
	ErrInvalidID = errors.New("invalid id")
)

// CorruptError describes a malformed index file.
type CorruptError struct {
	Path   string
	Offset int64 // byte offset of the record field that failed
	Msg    string
	Err    error
}

func (e *CorruptError) Error() string {
	s := fmt.Sprintf("index %s: corrupt at offset %d: %s", e.Path, e.Offset, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

func (e *CorruptError) Unwrap() error { return e.Err }

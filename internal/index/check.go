package index

import (
	"cmp"
	"fmt"
	"slices"
)

// InconsistencyError reports an entry that does not fit the file table.
type InconsistencyError struct {
	Entity ID
	File   ID
	Msg    string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("index inconsistent: entity %q in file %q: %s", e.Entity.String(), e.File.String(), e.Msg)
}

func (e *InconsistencyError) Is(target error) bool { return target == ErrInconsistent }

type span struct {
	entity ID
	start  uint64
	end    uint64
}

// Check verifies that every entry references a known file, lies within
// [0, size) of that file and does not overlap another entry of the same
// file. Zero-length entries occupy no bytes and never overlap.
func Check(files map[ID]uint64, tables ...map[ID]Entry) error {
	byFile := make(map[ID][]span)
	for _, entries := range tables {
		for id, e := range entries {
			size, ok := files[e.File]
			if !ok {
				return &InconsistencyError{Entity: id, File: e.File, Msg: "unknown data file"}
			}
			end, ok := e.End()
			if !ok {
				return &InconsistencyError{Entity: id, File: e.File, Msg: fmt.Sprintf("range %d+%d overflows", e.Offset, e.Length)}
			}
			if end > size {
				return &InconsistencyError{Entity: id, File: e.File, Msg: fmt.Sprintf("range [%d, %d) exceeds file size %d", e.Offset, end, size)}
			}
			if e.Length > 0 {
				byFile[e.File] = append(byFile[e.File], span{entity: id, start: e.Offset, end: end})
			}
		}
	}

	for file, spans := range byFile {
		slices.SortFunc(spans, func(a, b span) int {
			if c := cmp.Compare(a.start, b.start); c != 0 {
				return c
			}
			return a.entity.Compare(b.entity)
		})
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return &InconsistencyError{
					Entity: spans[i].entity,
					File:   file,
					Msg:    fmt.Sprintf("overlaps entity %q at [%d, %d)", spans[i-1].entity.String(), spans[i-1].start, spans[i-1].end),
				}
			}
		}
	}
	return nil
}

// MergeFiles combines file tables. The same file listed with different sizes
// is an inconsistency.
func MergeFiles(tables ...map[ID]uint64) (map[ID]uint64, error) {
	out := make(map[ID]uint64)
	for _, files := range tables {
		for id, size := range files {
			if prev, ok := out[id]; ok && prev != size {
				return nil, fmt.Errorf("%w: file %q listed with sizes %d and %d", ErrInconsistent, id.String(), prev, size)
			}
			out[id] = size
		}
	}
	return out, nil
}

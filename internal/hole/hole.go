// Package hole tracks the free byte ranges of one data file.
//
// Holes are kept in a B-tree ordered by offset. Adjacent holes are always
// coalesced, so no two holes touch or overlap. The allocator is not safe for
// concurrent use; callers serialize access per file.
package hole

import (
	"errors"
	"fmt"

	"github.com/google/btree"
)

var (
	// ErrOverlap is returned when a released range intersects an existing hole.
	ErrOverlap = errors.New("hole overlaps an existing hole")

	// ErrRange is returned for ranges whose end overflows uint64.
	ErrRange = errors.New("invalid hole range")
)

const degree = 16

// Hole is a free range [Offset, Offset+Length).
type Hole struct {
	Offset uint64
	Length uint64
}

// End returns the first byte after the hole.
func (h Hole) End() uint64 { return h.Offset + h.Length }

func less(a, b Hole) bool { return a.Offset < b.Offset }

// Allocator is a first-fit free list.
type Allocator struct {
	tree  *btree.BTreeG[Hole]
	total uint64
}

// New returns an allocator without holes.
func New() *Allocator {
	return &Allocator{tree: btree.NewG(degree, less)}
}

// Len returns the number of holes.
func (a *Allocator) Len() int { return a.tree.Len() }

// Total returns the number of free bytes.
func (a *Allocator) Total() uint64 { return a.total }

// Holes returns the holes in ascending offset order.
func (a *Allocator) Holes() []Hole {
	out := make([]Hole, 0, a.tree.Len())
	a.tree.Ascend(func(h Hole) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Reserve takes n bytes from the lowest-offset hole that can hold them. The
// bytes are taken from the front of the hole. ok is false when no hole is
// large enough; the caller then appends at the end of the file.
func (a *Allocator) Reserve(n uint64) (offset uint64, ok bool) {
	if n == 0 {
		return 0, false
	}
	var found Hole
	a.tree.Ascend(func(h Hole) bool {
		if h.Length >= n {
			found, ok = h, true
			return false
		}
		return true
	})
	if !ok {
		return 0, false
	}

	a.tree.Delete(found)
	if found.Length > n {
		a.tree.ReplaceOrInsert(Hole{Offset: found.Offset + n, Length: found.Length - n})
	}
	a.total -= n
	return found.Offset, true
}

// Release returns [offset, offset+length) to the free list, merging it with
// the holes directly before and after it. Releasing zero bytes is a no-op.
func (a *Allocator) Release(offset, length uint64) error {
	if length == 0 {
		return nil
	}
	end := offset + length
	if end < offset {
		return fmt.Errorf("%w: %d+%d overflows", ErrRange, offset, length)
	}

	merged := Hole{Offset: offset, Length: length}

	prev, hasPrev := a.before(offset)
	if hasPrev && prev.End() > offset {
		return fmt.Errorf("%w: [%d, %d) intersects [%d, %d)", ErrOverlap, offset, end, prev.Offset, prev.End())
	}
	next, hasNext := a.after(offset)
	if hasNext && next.Offset < end {
		return fmt.Errorf("%w: [%d, %d) intersects [%d, %d)", ErrOverlap, offset, end, next.Offset, next.End())
	}

	if hasPrev && prev.End() == offset {
		a.tree.Delete(prev)
		merged.Offset = prev.Offset
		merged.Length += prev.Length
	}
	if hasNext && next.Offset == end {
		a.tree.Delete(next)
		merged.Length += next.Length
	}
	a.tree.ReplaceOrInsert(merged)
	a.total += length
	return nil
}

// Check verifies that holes are non-empty, sorted, disjoint and coalesced.
func (a *Allocator) Check() error {
	var (
		prev  Hole
		first = true
		sum   uint64
		err   error
	)
	a.tree.Ascend(func(h Hole) bool {
		switch {
		case h.Length == 0:
			err = fmt.Errorf("empty hole at %d", h.Offset)
		case h.End() < h.Offset:
			err = fmt.Errorf("%w: hole at %d overflows", ErrRange, h.Offset)
		case !first && prev.End() >= h.Offset:
			err = fmt.Errorf("holes [%d, %d) and [%d, %d) are not coalesced", prev.Offset, prev.End(), h.Offset, h.End())
		}
		first = false
		prev = h
		sum += h.Length
		return err == nil
	})
	if err == nil && sum != a.total {
		err = fmt.Errorf("hole total %d does not match tracked total %d", sum, a.total)
	}
	return err
}

// before returns the hole with the greatest offset <= offset.
func (a *Allocator) before(offset uint64) (h Hole, ok bool) {
	a.tree.DescendLessOrEqual(Hole{Offset: offset}, func(item Hole) bool {
		h, ok = item, true
		return false
	})
	return h, ok
}

// after returns the hole with the smallest offset > offset.
func (a *Allocator) after(offset uint64) (h Hole, ok bool) {
	a.tree.AscendGreaterOrEqual(Hole{Offset: offset}, func(item Hole) bool {
		if item.Offset == offset {
			return true
		}
		h, ok = item, true
		return false
	})
	return h, ok
}

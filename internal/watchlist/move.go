package watchlist

import (
	"fmt"
	"slices"
)

// moveOffsets moves the elements at the from offsets so that they sit,
// in their original relative order, just before the element that was at
// offset to. to == len(s) moves them to the end.
func moveOffsets[T any](s []T, from []int, to int) ([]T, error) {
	if len(from) == 0 {
		return nil, fmt.Errorf("%w: no source offsets", ErrInvalidIndex)
	}
	if to < 0 || to > len(s) {
		return nil, fmt.Errorf("%w: destination %d out of range [0,%d]", ErrInvalidIndex, to, len(s))
	}

	offsets := slices.Clone(from)
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)
	for _, i := range offsets {
		if i < 0 || i >= len(s) {
			return nil, fmt.Errorf("%w: source %d out of range [0,%d)", ErrInvalidIndex, i, len(s))
		}
	}

	moved := make([]T, 0, len(offsets))
	rest := make([]T, 0, len(s)-len(offsets))
	before := 0
	for i, v := range s {
		if _, found := slices.BinarySearch(offsets, i); found {
			moved = append(moved, v)
			if i < to {
				before++
			}
			continue
		}
		rest = append(rest, v)
	}

	return slices.Insert(rest, to-before, moved...), nil
}

// Package options maintains the ordered accompaniment-group collections a
// restaurant admin edits. Every operation is copy-on-write: the input slice is
// never mutated, so an editor and its parent can hold references to the same
// sequence without aliasing surprises.
package options

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
)

var ErrIndexOutOfRange = errors.New("option group index out of range")

// Move removes the group at from and reinserts it at to, shifting the groups
// between them by one position. Out-of-bounds indices are invariant faults:
// silently reordering the wrong group would misattribute every price edited
// afterwards. from == to is a no-op that still returns a fresh copy.
func Move(groups []domain.AccompanimentGroup, from, to int) ([]domain.AccompanimentGroup, error) {
	if from < 0 || from >= len(groups) {
		return nil, fmt.Errorf("%w: from=%d len=%d", ErrIndexOutOfRange, from, len(groups))
	}
	if to < 0 || to >= len(groups) {
		return nil, fmt.Errorf("%w: to=%d len=%d", ErrIndexOutOfRange, to, len(groups))
	}

	out := make([]domain.AccompanimentGroup, len(groups))
	copy(out, groups)
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved

	return out, nil
}

// Replace substitutes the group at index, leaving the order of all other
// groups untouched.
func Replace(groups []domain.AccompanimentGroup, index int, updated domain.AccompanimentGroup) ([]domain.AccompanimentGroup, error) {
	if index < 0 || index >= len(groups) {
		return nil, fmt.Errorf("%w: index=%d len=%d", ErrIndexOutOfRange, index, len(groups))
	}

	out := make([]domain.AccompanimentGroup, len(groups))
	copy(out, groups)
	out[index] = updated
	return out, nil
}

// RemoveByID removes the group with the given id, preserving the order of the
// survivors. Removal addresses groups by identity rather than index because
// the index may have drifted under a concurrent reorder. An unknown id is a
// no-op: removing an already-removed group must not fail.
func RemoveByID(groups []domain.AccompanimentGroup, id uuid.UUID) []domain.AccompanimentGroup {
	out := make([]domain.AccompanimentGroup, 0, len(groups))
	for _, g := range groups {
		if g.ID == id {
			continue
		}
		out = append(out, g)
	}
	return out
}

// ReorderBySelection returns items reordered so that those named in
// selectedIDs come first, in selection order, followed by the rest in their
// original order. A selected id with no matching item is skipped; the result
// is always a permutation of items.
func ReorderBySelection(items []domain.AccompanimentItem, selectedIDs []uuid.UUID) []domain.AccompanimentItem {
	byID := make(map[uuid.UUID]domain.AccompanimentItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	out := make([]domain.AccompanimentItem, 0, len(items))
	selected := make(map[uuid.UUID]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		if selected[id] {
			continue
		}
		it, ok := byID[id]
		if !ok {
			continue
		}
		selected[id] = true
		out = append(out, it)
	}

	for _, it := range items {
		if !selected[it.ID] {
			out = append(out, it)
		}
	}

	return out
}

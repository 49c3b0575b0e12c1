package options

import (
	"fmt"

	"resto-platform/internal/domain"
)

// DragSession tracks one drag-reorder gesture over a rendered group list.
// Reordering is continuous rather than drop-time: the order commits
// incrementally each time the pointer crosses the vertical midpoint of a
// neighboring row, and the dragged row's tracked index moves with it so
// subsequent crossings compute against the new arrangement. Pointer events
// must be fed in delivery order; moves are not commutative.
type DragSession struct {
	groups  []domain.AccompanimentGroup
	heights []int // rendered row heights, index-aligned with groups
	dragged int
}

// NewDragSession starts a drag on the row at fromIndex. heights carries the
// rendered height of each row, one entry per group.
func NewDragSession(groups []domain.AccompanimentGroup, heights []int, fromIndex int) (*DragSession, error) {
	if len(heights) != len(groups) {
		return nil, fmt.Errorf("heights length %d does not match %d groups", len(heights), len(groups))
	}
	if fromIndex < 0 || fromIndex >= len(groups) {
		return nil, fmt.Errorf("%w: from=%d len=%d", ErrIndexOutOfRange, fromIndex, len(groups))
	}

	gs := make([]domain.AccompanimentGroup, len(groups))
	copy(gs, groups)
	hs := make([]int, len(heights))
	copy(hs, heights)

	return &DragSession{groups: gs, heights: hs, dragged: fromIndex}, nil
}

// Track processes one pointer-move event. pointerY is the pointer's vertical
// offset from the top of the list. It returns the number of reorders the
// event committed (one per midpoint crossed).
//
// The guard is direction-asymmetric: dragging down only swaps once the
// pointer is strictly past the next row's midpoint, dragging up only once it
// is strictly above the previous row's midpoint. A pointer resting exactly on
// a boundary therefore triggers neither direction, which is what prevents
// oscillation at row edges.
func (s *DragSession) Track(pointerY int) int {
	moves := 0

	for s.dragged+1 < len(s.groups) && pointerY > s.midpoint(s.dragged+1) {
		s.swap(s.dragged, s.dragged+1)
		s.dragged++
		moves++
	}

	for s.dragged > 0 && pointerY < s.midpoint(s.dragged-1) {
		s.swap(s.dragged, s.dragged-1)
		s.dragged--
		moves++
	}

	return moves
}

// Index returns the dragged row's current position.
func (s *DragSession) Index() int {
	return s.dragged
}

// Groups returns a copy of the current arrangement.
func (s *DragSession) Groups() []domain.AccompanimentGroup {
	out := make([]domain.AccompanimentGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *DragSession) midpoint(index int) int {
	top := 0
	for i := 0; i < index; i++ {
		top += s.heights[i]
	}
	return top + s.heights[index]/2
}

func (s *DragSession) swap(i, j int) {
	s.groups[i], s.groups[j] = s.groups[j], s.groups[i]
	s.heights[i], s.heights[j] = s.heights[j], s.heights[i]
}

package options

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
)

// Editor owns the ordered group collection for one editing session. The
// session works on its own copy of the groups; nothing is shared with the
// caller and nothing reaches the store until a save succeeds, so a failed
// save leaves both the store and the session in their prior state.
type Editor struct {
	foodID uuid.UUID
	groups []domain.AccompanimentGroup
	store  interfaces.AccompanimentRepository
	events interfaces.RefreshPublisher
}

func NewEditor(foodID uuid.UUID, groups []domain.AccompanimentGroup, store interfaces.AccompanimentRepository, events interfaces.RefreshPublisher) *Editor {
	gs := make([]domain.AccompanimentGroup, len(groups))
	copy(gs, groups)
	return &Editor{foodID: foodID, groups: gs, store: store, events: events}
}

// Groups returns a copy of the current arrangement.
func (e *Editor) Groups() []domain.AccompanimentGroup {
	out := make([]domain.AccompanimentGroup, len(e.groups))
	copy(out, e.groups)
	return out
}

// Move reorders the session's groups. Reorders are local until the next save.
func (e *Editor) Move(from, to int) error {
	moved, err := Move(e.groups, from, to)
	if err != nil {
		return err
	}
	e.groups = moved
	return nil
}

// SaveGroupEdit replaces the group at index and persists the whole ordered
// collection. The session state only advances once the store accepts it.
func (e *Editor) SaveGroupEdit(ctx context.Context, index int, updated domain.AccompanimentGroup) error {
	next, err := Replace(e.groups, index, updated)
	if err != nil {
		return err
	}
	return e.commit(ctx, next)
}

// Remove deletes a group by id and persists the survivors. Removing an id
// that is already gone persists the unchanged collection and succeeds.
func (e *Editor) Remove(ctx context.Context, id uuid.UUID) error {
	return e.commit(ctx, RemoveByID(e.groups, id))
}

// Save persists the current arrangement, typically at drag drop.
func (e *Editor) Save(ctx context.Context) error {
	return e.commit(ctx, e.groups)
}

func (e *Editor) commit(ctx context.Context, next []domain.AccompanimentGroup) error {
	if err := e.store.ReplaceAll(ctx, e.foodID, next); err != nil {
		return err
	}
	e.groups = next

	// Fire-and-forget: a lost refresh broadcast only delays a refetch.
	_ = e.events.Publish(ctx, interfaces.RefreshMessage{
		Topic:     interfaces.TopicRefresh,
		Origin:    "accompaniment-editor",
		Timestamp: time.Now().UTC(),
	})
	return nil
}

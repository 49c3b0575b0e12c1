package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidAccompaniment rejects a group collection that fails the authoring
// rules before anything is persisted.
var ErrInvalidAccompaniment = errors.New("invalid accompaniment group")

// AccompanimentItem is a selectable add-on (a side, a sauce, a topping) owned
// by one AccompanimentGroup. Order line items reference it by id only.
type AccompanimentItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        Money     `json:"price"`
	IsObligatory bool      `json:"is_obligatory"`
}

// GroupEntry is one item inside a group together with the quantity selected
// for it. In the admin authoring surface the quantity is the default offered;
// inside a command snapshot it is the quantity the customer actually chose.
type GroupEntry struct {
	Item     AccompanimentItem `json:"item"`
	Quantity int               `json:"quantity"`
}

// AccompanimentGroup is a named, ordered, bounded-selection set of
// accompaniment items attached to a food or menu. The order of Items is
// business-significant (first selected, first shown). MaxOptions caps how many
// items are selectable at order time; that cap is enforced upstream and is
// carried here as data only.
type AccompanimentGroup struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	MaxOptions   int          `json:"max_options"`
	Items        []GroupEntry `json:"items"`
	IsObligatory bool         `json:"is_obligatory"`
}

// Snapshot returns a deep copy of the group. Commands snapshot the group state
// at placement time so later admin edits never reach into placed orders.
func (g AccompanimentGroup) Snapshot() AccompanimentGroup {
	cp := g
	cp.Items = make([]GroupEntry, len(g.Items))
	copy(cp.Items, g.Items)
	return cp
}

// SnapshotGroups deep-copies an ordered group collection.
func SnapshotGroups(groups []AccompanimentGroup) []AccompanimentGroup {
	if groups == nil {
		return nil
	}
	out := make([]AccompanimentGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Snapshot()
	}
	return out
}

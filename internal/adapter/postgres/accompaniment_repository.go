package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
)

type accompanimentRepository struct {
	db DB
}

func NewAccompanimentRepository(db DB) interfaces.AccompanimentRepository {
	return &accompanimentRepository{db: db}
}

// ListByFood loads a food's groups and their items in stored display order.
func (r *accompanimentRepository) ListByFood(ctx context.Context, foodID uuid.UUID) ([]domain.AccompanimentGroup, error) {
	query := `
		SELECT id, title, max_options, is_obligatory
		FROM accompaniment_groups
		WHERE food_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, foodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accompaniment groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.AccompanimentGroup
	for rows.Next() {
		var g domain.AccompanimentGroup
		if err := rows.Scan(&g.ID, &g.Title, &g.MaxOptions, &g.IsObligatory); err != nil {
			return nil, fmt.Errorf("failed to scan accompaniment group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()

	for i := range groups {
		items, err := r.loadItems(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Items = items
	}
	return groups, nil
}

func (r *accompanimentRepository) loadItems(ctx context.Context, groupID uuid.UUID) ([]domain.GroupEntry, error) {
	query := `
		SELECT item_id, name, amount, currency, is_obligatory, quantity
		FROM accompaniment_items
		WHERE group_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accompaniment items: %w", err)
	}
	defer rows.Close()

	var items []domain.GroupEntry
	for rows.Next() {
		var e domain.GroupEntry
		if err := rows.Scan(&e.Item.ID, &e.Item.Name, &e.Item.Price.Amount, &e.Item.Price.Currency, &e.Item.IsObligatory, &e.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan accompaniment item: %w", err)
		}
		items = append(items, e)
	}
	return items, nil
}

// ReplaceAll swaps a food's whole ordered collection in one transaction. The
// position columns record the editor's arrangement; partial saves do not
// exist at this boundary.
func (r *accompanimentRepository) ReplaceAll(ctx context.Context, foodID uuid.UUID, groups []domain.AccompanimentGroup) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM accompaniment_items
		WHERE group_id IN (SELECT id FROM accompaniment_groups WHERE food_id = $1)
	`, foodID)
	if err != nil {
		return fmt.Errorf("failed to clear accompaniment items: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM accompaniment_groups WHERE food_id = $1`, foodID); err != nil {
		return fmt.Errorf("failed to clear accompaniment groups: %w", err)
	}

	for pos, g := range groups {
		groupID := g.ID
		if groupID == uuid.Nil {
			groupID = uuid.New()
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO accompaniment_groups (id, food_id, title, max_options, is_obligatory, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, groupID, foodID, g.Title, g.MaxOptions, g.IsObligatory, pos)
		if err != nil {
			return fmt.Errorf("failed to insert accompaniment group: %w", err)
		}

		for itemPos, e := range g.Items {
			itemID := e.Item.ID
			if itemID == uuid.Nil {
				itemID = uuid.New()
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO accompaniment_items (item_id, group_id, name, amount, currency, is_obligatory, quantity, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, itemID, groupID, e.Item.Name, e.Item.Price.Amount, e.Item.Price.Currency, e.Item.IsObligatory, e.Quantity, itemPos)
			if err != nil {
				return fmt.Errorf("failed to insert accompaniment item: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

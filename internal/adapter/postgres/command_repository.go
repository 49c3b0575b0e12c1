package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
)

type commandRepository struct {
	db DB
}

func NewCommandRepository(db DB) interfaces.CommandRepository {
	return &commandRepository{db: db}
}

// Line items and their option snapshots are stored as JSONB documents: they
// are frozen at placement time and only ever read back whole, never queried
// per row.
func (r *commandRepository) Create(ctx context.Context, cmd *domain.Command) error {
	items, err := json.Marshal(cmd.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal food lines: %w", err)
	}
	menus, err := json.Marshal(cmd.Menus)
	if err != nil {
		return fmt.Errorf("failed to marshal menu lines: %w", err)
	}

	query := `
		INSERT INTO commands (id, code, restaurant_id, type, items, menus, priceless,
		                      shipping_address, shipping_time, delivery_amount, delivery_currency,
		                      total_amount, total_currency, validated, revoked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = r.db.Exec(ctx, query,
		cmd.ID, cmd.Code, cmd.RestaurantID, cmd.Type, items, menus, cmd.Priceless,
		cmd.ShippingAddress, cmd.ShippingTime, cmd.DeliveryPrice.Amount, cmd.DeliveryPrice.Currency,
		cmd.TotalPrice.Amount, cmd.TotalPrice.Currency, cmd.Validated, cmd.Revoked,
		cmd.CreatedAt, cmd.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert command: %w", err)
	}
	return nil
}

const commandColumns = `
	id, code, restaurant_id, type, items, menus, priceless,
	shipping_address, shipping_time, delivery_amount, delivery_currency,
	total_amount, total_currency, validated, revoked, created_at, updated_at
`

func (r *commandRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Command, error) {
	query := `SELECT ` + commandColumns + ` FROM commands WHERE id = $1`

	cmd, err := scanCommand(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, id)
	}
	return cmd, nil
}

func (r *commandRepository) List(ctx context.Context, restaurantID *uuid.UUID) ([]*domain.Command, error) {
	query := `SELECT ` + commandColumns + ` FROM commands`
	args := []any{}
	if restaurantID != nil {
		query += ` WHERE restaurant_id = $1`
		args = append(args, *restaurantID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands: %w", err)
	}
	defer rows.Close()

	var out []*domain.Command
	for rows.Next() {
		cmd, err := scanCommand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		out = append(out, cmd)
	}
	return out, nil
}

func (r *commandRepository) UpdateFlags(ctx context.Context, cmd *domain.Command) error {
	query := `
		UPDATE commands
		SET validated = $1, revoked = $2, updated_at = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, cmd.Validated, cmd.Revoked, cmd.UpdatedAt, cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to update command: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommandNotFound
	}
	return nil
}

func (r *commandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM commands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete command: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommandNotFound
	}
	return nil
}

func (r *commandRepository) GenerateCode(ctx context.Context) (int, error) {
	var code int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(code), 0) + 1 FROM commands`).Scan(&code)
	if err != nil {
		return 0, fmt.Errorf("failed to generate command code: %w", err)
	}
	return code, nil
}

func scanCommand(row Row) (*domain.Command, error) {
	var (
		cmd          domain.Command
		items, menus []byte
	)
	err := row.Scan(
		&cmd.ID, &cmd.Code, &cmd.RestaurantID, &cmd.Type, &items, &menus, &cmd.Priceless,
		&cmd.ShippingAddress, &cmd.ShippingTime, &cmd.DeliveryPrice.Amount, &cmd.DeliveryPrice.Currency,
		&cmd.TotalPrice.Amount, &cmd.TotalPrice.Currency, &cmd.Validated, &cmd.Revoked,
		&cmd.CreatedAt, &cmd.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &cmd.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal food lines: %w", err)
	}
	if err := json.Unmarshal(menus, &cmd.Menus); err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu lines: %w", err)
	}
	return &cmd, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
)

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	query := `
		SELECT id, name, city, currency, delivery_amount, open, created_at
		FROM restaurants
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var out []*domain.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	return out, nil
}

func (r *catalogRepository) FindRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	query := `
		SELECT id, name, city, currency, delivery_amount, open, created_at
		FROM restaurants
		WHERE id = $1
	`
	rest, err := scanRestaurant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("restaurant not found: %w", err)
	}
	return rest, nil
}

func (r *catalogRepository) ListFoods(ctx context.Context, filter domain.FoodFilter) ([]*domain.Food, error) {
	query := `
		SELECT f.id, f.restaurant_id, f.name, f.category, f.lang, f.amount, r.currency, f.available, f.created_at
		FROM foods f
		JOIN restaurants r ON r.id = f.restaurant_id
		WHERE f.available
	`
	var args []any
	if filter.Lang != "" {
		args = append(args, filter.Lang)
		query += fmt.Sprintf(" AND f.lang = $%d", len(args))
	}
	if filter.RestaurantID != nil {
		args = append(args, *filter.RestaurantID)
		query += fmt.Sprintf(" AND f.restaurant_id = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND f.category = $%d", len(args))
	}
	query += " ORDER BY f.name ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

func (r *catalogRepository) ListMenus(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Menu, error) {
	query := `
		SELECT m.id, m.restaurant_id, m.name, m.pricing, m.amount, r.currency, m.created_at
		FROM menus m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.restaurant_id = $1
		ORDER BY m.name ASC
	`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var out []*domain.Menu
	for rows.Next() {
		var m domain.Menu
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Pricing, &m.Price.Amount, &m.Price.Currency, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		out = append(out, &m)
	}
	return out, nil
}

// RecommendedFoods ranks by the times_ordered counter, maintained when
// commands are placed.
func (r *catalogRepository) RecommendedFoods(ctx context.Context, restaurantID uuid.UUID, limit int) ([]*domain.Food, error) {
	query := `
		SELECT f.id, f.restaurant_id, f.name, f.category, f.lang, f.amount, r.currency, f.available, f.created_at
		FROM foods f
		JOIN restaurants r ON r.id = f.restaurant_id
		WHERE f.restaurant_id = $1 AND f.available
		ORDER BY f.times_ordered DESC, f.name ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

func (r *catalogRepository) ListBlogPosts(ctx context.Context) ([]*domain.BlogPost, error) {
	query := `
		SELECT id, title, body, published_at
		FROM blog_posts
		ORDER BY published_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	var out []*domain.BlogPost
	for rows.Next() {
		var p domain.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		out = append(out, &p)
	}
	return out, nil
}

func scanRestaurant(row Row) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := row.Scan(&rest.ID, &rest.Name, &rest.City, &rest.Currency, &rest.DeliveryPrice.Amount, &rest.Open, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	rest.DeliveryPrice.Currency = rest.Currency
	return &rest, nil
}

func scanFoods(rows Rows) ([]*domain.Food, error) {
	var out []*domain.Food
	for rows.Next() {
		var f domain.Food
		if err := rows.Scan(&f.ID, &f.RestaurantID, &f.Name, &f.Category, &f.Lang, &f.Price.Amount, &f.Price.Currency, &f.Available, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		out = append(out, &f)
	}
	return out, nil
}

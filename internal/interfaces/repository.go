package interfaces

import (
	"context"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
)

// Repository contracts (adapter/postgres).

type CommandRepository interface {
	Create(ctx context.Context, cmd *domain.Command) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Command, error)
	List(ctx context.Context, restaurantID *uuid.UUID) ([]*domain.Command, error)
	// UpdateFlags persists the terminal validated/revoked flags.
	UpdateFlags(ctx context.Context, cmd *domain.Command) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateCode(ctx context.Context) (int, error)
}

type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	FindRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	ListFoods(ctx context.Context, filter domain.FoodFilter) ([]*domain.Food, error)
	ListMenus(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Menu, error)
	// RecommendedFoods returns the restaurant's most-ordered foods.
	RecommendedFoods(ctx context.Context, restaurantID uuid.UUID, limit int) ([]*domain.Food, error)
	ListBlogPosts(ctx context.Context) ([]*domain.BlogPost, error)
}

type AccompanimentRepository interface {
	ListByFood(ctx context.Context, foodID uuid.UUID) ([]domain.AccompanimentGroup, error)
	// ReplaceAll persists the whole ordered collection for a food. The
	// editor never saves deltas: every edit submits the full sequence.
	ReplaceAll(ctx context.Context, foodID uuid.UUID, groups []domain.AccompanimentGroup) error
}

package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
	"resto-platform/internal/pricing"
)

// CommandDraft is an unplaced command as assembled by a storefront cart: the
// same shape as domain.Command minus identity, code and terminal flags.
type CommandDraft struct {
	RestaurantID    uuid.UUID
	Type            domain.CommandType
	Items           []domain.FoodLineItem
	Menus           []domain.MenuLineItem
	Priceless       bool
	ShippingAddress *string
	ShippingTime    *time.Time
}

// AdminService is the back-office use-case surface.
type AdminService interface {
	ListCommands(ctx context.Context, restaurantID *uuid.UUID) ([]*domain.Command, error)
	ValidateCommand(ctx context.Context, id uuid.UUID) error
	RevokeCommand(ctx context.Context, id uuid.UUID) error
	DeleteCommand(ctx context.Context, id uuid.UUID) error
	CommandBreakdown(ctx context.Context, id uuid.UUID) (*pricing.CommandBreakdown, error)
	AccompanimentGroups(ctx context.Context, foodID uuid.UUID) ([]domain.AccompanimentGroup, error)
	SaveAccompanimentGroups(ctx context.Context, foodID uuid.UUID, groups []domain.AccompanimentGroup) error
}

// StorefrontService is the customer-facing use-case surface.
type StorefrontService interface {
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	ListFoods(ctx context.Context, filter domain.FoodFilter) ([]*domain.Food, error)
	ListMenus(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Menu, error)
	Recommendations(ctx context.Context, restaurantID uuid.UUID, limit int) ([]*domain.Food, error)
	ListBlogPosts(ctx context.Context) ([]*domain.BlogPost, error)
	EstimateCart(ctx context.Context, draft CommandDraft) (*pricing.CommandBreakdown, error)
	PlaceCommand(ctx context.Context, draft CommandDraft) (*domain.Command, error)
}

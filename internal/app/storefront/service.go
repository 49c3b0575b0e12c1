package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resto-platform/internal/adapter/logger"
	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
	"resto-platform/internal/pricing"
)

// Service is the customer-facing use-case layer: catalog browsing,
// recommendations, cart estimation and checkout.
type Service struct {
	catalog  interfaces.CatalogRepository
	commands interfaces.CommandRepository
	events   interfaces.RefreshPublisher
	engine   pricing.Engine
	logger   logger.Logger
}

func NewService(
	catalog interfaces.CatalogRepository,
	commands interfaces.CommandRepository,
	events interfaces.RefreshPublisher,
	engine pricing.Engine,
	lgr logger.Logger,
) *Service {
	return &Service{
		catalog:  catalog,
		commands: commands,
		events:   events,
		engine:   engine,
		logger:   lgr,
	}
}

func (s *Service) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.catalog.ListRestaurants(ctx)
}

func (s *Service) ListFoods(ctx context.Context, filter domain.FoodFilter) ([]*domain.Food, error) {
	return s.catalog.ListFoods(ctx, filter)
}

func (s *Service) ListMenus(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Menu, error) {
	return s.catalog.ListMenus(ctx, restaurantID)
}

func (s *Service) Recommendations(ctx context.Context, restaurantID uuid.UUID, limit int) ([]*domain.Food, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.catalog.RecommendedFoods(ctx, restaurantID, limit)
}

func (s *Service) ListBlogPosts(ctx context.Context) ([]*domain.BlogPost, error) {
	return s.catalog.ListBlogPosts(ctx)
}

// EstimateCart prices a cart without placing it. The delivery surcharge comes
// from the restaurant configuration, resolved here to a flat amount before
// the engine runs.
func (s *Service) EstimateCart(ctx context.Context, draft interfaces.CommandDraft) (*pricing.CommandBreakdown, error) {
	cmd, err := s.buildCommand(ctx, draft)
	if err != nil {
		return nil, err
	}
	return s.engine.Breakdown(cmd)
}

// PlaceCommand turns a cart into a persisted command: option groups are
// snapshotted so later admin edits never reach the placed order, a
// human-facing code is assigned and the priced total is stored with it.
func (s *Service) PlaceCommand(ctx context.Context, draft interfaces.CommandDraft) (*domain.Command, error) {
	cmd, err := s.buildCommand(ctx, draft)
	if err != nil {
		return nil, err
	}

	bd, err := s.engine.Breakdown(cmd)
	if err != nil {
		s.logger.Error("pricing_failed", "Cart could not be priced", "", nil, err)
		return nil, err
	}
	cmd.TotalPrice = domain.NewMoney(bd.Total, bd.Currency)

	code, err := s.commands.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate command code: %w", err)
	}
	cmd.Code = code

	if err := s.commands.Create(ctx, cmd); err != nil {
		s.logger.Error("command_create_failed", "Failed to persist command", "", nil, err)
		return nil, err
	}

	s.logger.Info("command_placed", fmt.Sprintf("Command %d placed", cmd.Code), "", map[string]interface{}{
		"command_id": cmd.ID.String(),
		"code":       cmd.Code,
		"total":      bd.Total,
	})

	s.publishRefresh(ctx)
	return cmd, nil
}

func (s *Service) buildCommand(ctx context.Context, draft interfaces.CommandDraft) (*domain.Command, error) {
	items := make([]domain.FoodLineItem, len(draft.Items))
	for i, line := range draft.Items {
		items[i] = line
		items[i].Options = domain.SnapshotGroups(line.Options)
	}

	menus := make([]domain.MenuLineItem, len(draft.Menus))
	for i, line := range draft.Menus {
		menus[i] = line
		menus[i].Foods = make([]domain.MenuFood, len(line.Foods))
		for j, mf := range line.Foods {
			menus[i].Foods[j] = mf
			menus[i].Foods[j].Options = domain.SnapshotGroups(mf.Options)
		}
	}

	cmd, err := domain.NewCommand(draft.RestaurantID, draft.Type, items, menus, draft.ShippingAddress, draft.ShippingTime)
	if err != nil {
		return nil, err
	}
	cmd.Priceless = draft.Priceless

	if draft.Type == domain.CommandDelivery {
		restaurant, err := s.catalog.FindRestaurant(ctx, draft.RestaurantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve restaurant: %w", err)
		}
		cmd.DeliveryPrice = restaurant.DeliveryPrice
	}

	return cmd, nil
}

func (s *Service) publishRefresh(ctx context.Context) {
	for _, topic := range []interfaces.RefreshTopic{interfaces.TopicRefresh, interfaces.TopicRefreshNavigationBar} {
		err := s.events.Publish(ctx, interfaces.RefreshMessage{
			Topic:     topic,
			Origin:    "storefront",
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("refresh_publish_failed", "Failed to publish refresh event", "", map[string]interface{}{
				"topic": string(topic),
			}, err)
		}
	}
}

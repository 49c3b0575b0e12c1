package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
	"resto-platform/internal/pricing"
)

type nopLogger struct{}

func (nopLogger) Info(action, message, requestID string, details map[string]interface{})  {}
func (nopLogger) Debug(action, message, requestID string, details map[string]interface{}) {}
func (nopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
}

type fakeCatalog struct {
	restaurant *domain.Restaurant
	foods      []*domain.Food
}

func (f *fakeCatalog) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return []*domain.Restaurant{f.restaurant}, nil
}

func (f *fakeCatalog) FindRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	if f.restaurant == nil || f.restaurant.ID != id {
		return nil, errors.New("restaurant not found")
	}
	return f.restaurant, nil
}

func (f *fakeCatalog) ListFoods(ctx context.Context, filter domain.FoodFilter) ([]*domain.Food, error) {
	return f.foods, nil
}

func (f *fakeCatalog) ListMenus(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Menu, error) {
	return nil, nil
}

func (f *fakeCatalog) RecommendedFoods(ctx context.Context, restaurantID uuid.UUID, limit int) ([]*domain.Food, error) {
	if limit < len(f.foods) {
		return f.foods[:limit], nil
	}
	return f.foods, nil
}

func (f *fakeCatalog) ListBlogPosts(ctx context.Context) ([]*domain.BlogPost, error) {
	return nil, nil
}

type fakeCommands struct {
	created []*domain.Command
	code    int
}

func (f *fakeCommands) Create(ctx context.Context, cmd *domain.Command) error {
	f.created = append(f.created, cmd)
	return nil
}

func (f *fakeCommands) FindByID(ctx context.Context, id uuid.UUID) (*domain.Command, error) {
	return nil, domain.ErrCommandNotFound
}

func (f *fakeCommands) List(ctx context.Context, restaurantID *uuid.UUID) ([]*domain.Command, error) {
	return f.created, nil
}

func (f *fakeCommands) UpdateFlags(ctx context.Context, cmd *domain.Command) error { return nil }

func (f *fakeCommands) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeCommands) GenerateCode(ctx context.Context) (int, error) {
	f.code++
	return f.code, nil
}

type fakeEvents struct {
	topics []interfaces.RefreshTopic
}

func (f *fakeEvents) Publish(ctx context.Context, msg interfaces.RefreshMessage) error {
	f.topics = append(f.topics, msg.Topic)
	return nil
}

func testRestaurant() *domain.Restaurant {
	return &domain.Restaurant{
		ID:            uuid.New(),
		Name:          "Chez Awa",
		Currency:      "EUR",
		DeliveryPrice: domain.Money{Amount: 250, Currency: "EUR"},
		Open:          true,
	}
}

func draftFor(r *domain.Restaurant) interfaces.CommandDraft {
	return interfaces.CommandDraft{
		RestaurantID: r.ID,
		Type:         domain.CommandOnSite,
		Items: []domain.FoodLineItem{{
			Item:     domain.Food{ID: uuid.New(), Name: "Mafe", Price: domain.Money{Amount: 1100, Currency: "EUR"}},
			Quantity: 2,
		}},
	}
}

func newTestService(catalog *fakeCatalog, commands *fakeCommands, events *fakeEvents) *Service {
	return NewService(catalog, commands, events, pricing.Engine{}, nopLogger{})
}

func TestEstimateCart(t *testing.T) {
	r := testRestaurant()
	svc := newTestService(&fakeCatalog{restaurant: r}, &fakeCommands{}, &fakeEvents{})

	bd, err := svc.EstimateCart(context.Background(), draftFor(r))

	require.NoError(t, err)
	assert.Equal(t, int64(2200), bd.Total)
	assert.Equal(t, "EUR", bd.Currency)
}

func TestEstimateCartDoesNotPersist(t *testing.T) {
	r := testRestaurant()
	commands := &fakeCommands{}
	events := &fakeEvents{}
	svc := newTestService(&fakeCatalog{restaurant: r}, commands, events)

	_, err := svc.EstimateCart(context.Background(), draftFor(r))

	require.NoError(t, err)
	assert.Empty(t, commands.created)
	assert.Empty(t, events.topics)
}

func TestPlaceCommand(t *testing.T) {
	r := testRestaurant()
	commands := &fakeCommands{}
	events := &fakeEvents{}
	svc := newTestService(&fakeCatalog{restaurant: r}, commands, events)

	cmd, err := svc.PlaceCommand(context.Background(), draftFor(r))

	require.NoError(t, err)
	assert.Equal(t, 1, cmd.Code)
	assert.Equal(t, domain.Money{Amount: 2200, Currency: "EUR"}, cmd.TotalPrice)
	require.Len(t, commands.created, 1)
	assert.Equal(t, []interfaces.RefreshTopic{
		interfaces.TopicRefresh,
		interfaces.TopicRefreshNavigationBar,
	}, events.topics)
}

func TestPlaceCommandResolvesDeliveryPrice(t *testing.T) {
	r := testRestaurant()
	svc := newTestService(&fakeCatalog{restaurant: r}, &fakeCommands{}, &fakeEvents{})

	draft := draftFor(r)
	draft.Type = domain.CommandDelivery
	addr := "35 avenue Bourguiba, Dakar"
	draft.ShippingAddress = &addr

	cmd, err := svc.PlaceCommand(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, r.DeliveryPrice, cmd.DeliveryPrice)
	assert.Equal(t, int64(2450), cmd.TotalPrice.Amount, "total includes the delivery surcharge")
}

func TestPlaceCommandSnapshotsOptions(t *testing.T) {
	r := testRestaurant()
	svc := newTestService(&fakeCatalog{restaurant: r}, &fakeCommands{}, &fakeEvents{})

	shared := []domain.AccompanimentGroup{{
		ID:    uuid.New(),
		Title: "Sauces",
		Items: []domain.GroupEntry{{
			Item:     domain.AccompanimentItem{ID: uuid.New(), Name: "Harissa", Price: domain.Money{Amount: 100, Currency: "EUR"}},
			Quantity: 1,
		}},
	}}
	draft := draftFor(r)
	draft.Items[0].Options = shared

	cmd, err := svc.PlaceCommand(context.Background(), draft)
	require.NoError(t, err)

	// A later edit to the live group must not reach the placed command.
	shared[0].Items[0].Item.Name = "Mayonnaise"
	shared[0].Items[0].Quantity = 9

	got := cmd.Items[0].Options[0].Items[0]
	assert.Equal(t, "Harissa", got.Item.Name)
	assert.Equal(t, 1, got.Quantity)
}

func TestPlaceCommandRejectsUnpriceableCart(t *testing.T) {
	r := testRestaurant()
	commands := &fakeCommands{}
	events := &fakeEvents{}
	svc := newTestService(&fakeCatalog{restaurant: r}, commands, events)

	draft := draftFor(r)
	draft.Items[0].Item.Price = domain.Money{Amount: -100, Currency: "EUR"}

	_, err := svc.PlaceCommand(context.Background(), draft)

	assert.ErrorIs(t, err, pricing.ErrComputationFault)
	assert.Empty(t, commands.created)
	assert.Empty(t, events.topics)
}

func TestPlaceCommandPricelessSkipsDelivery(t *testing.T) {
	r := testRestaurant()
	svc := newTestService(&fakeCatalog{restaurant: r}, &fakeCommands{}, &fakeEvents{})

	draft := draftFor(r)
	draft.Type = domain.CommandDelivery
	addr := "35 avenue Bourguiba, Dakar"
	draft.ShippingAddress = &addr
	draft.Priceless = true

	cmd, err := svc.PlaceCommand(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, int64(2200), cmd.TotalPrice.Amount, "priceless commands never pay delivery")
}

func TestRecommendationsDefaultLimit(t *testing.T) {
	foods := make([]*domain.Food, 15)
	for i := range foods {
		foods[i] = &domain.Food{ID: uuid.New(), Name: "Dish"}
	}
	svc := newTestService(&fakeCatalog{restaurant: testRestaurant(), foods: foods}, &fakeCommands{}, &fakeEvents{})

	got, err := svc.Recommendations(context.Background(), uuid.New(), 0)

	require.NoError(t, err)
	assert.Len(t, got, 10)
}

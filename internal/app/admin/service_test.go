package admin

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

type fakeCommands struct {
	byID    map[uuid.UUID]*domain.Command
	updated []uuid.UUID
	deleted []uuid.UUID
}

func newFakeCommands(cmds ...*domain.Command) *fakeCommands {
	f := &fakeCommands{byID: make(map[uuid.UUID]*domain.Command)}
	for _, c := range cmds {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCommands) Create(ctx context.Context, cmd *domain.Command) error {
	f.byID[cmd.ID] = cmd
	return nil
}

func (f *fakeCommands) FindByID(ctx context.Context, id uuid.UUID) (*domain.Command, error) {
	cmd, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrCommandNotFound
	}
	return cmd, nil
}

func (f *fakeCommands) List(ctx context.Context, restaurantID *uuid.UUID) ([]*domain.Command, error) {
	var out []*domain.Command
	for _, c := range f.byID {
		if restaurantID == nil || c.RestaurantID == *restaurantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommands) UpdateFlags(ctx context.Context, cmd *domain.Command) error {
	f.updated = append(f.updated, cmd.ID)
	return nil
}

func (f *fakeCommands) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrCommandNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCommands) GenerateCode(ctx context.Context) (int, error) {
	return len(f.byID) + 1, nil
}

type fakeAccompaniments struct {
	groups map[uuid.UUID][]domain.AccompanimentGroup
	failed bool
}

func (f *fakeAccompaniments) ListByFood(ctx context.Context, foodID uuid.UUID) ([]domain.AccompanimentGroup, error) {
	return f.groups[foodID], nil
}

func (f *fakeAccompaniments) ReplaceAll(ctx context.Context, foodID uuid.UUID, groups []domain.AccompanimentGroup) error {
	if f.failed {
		return errors.New("store unavailable")
	}
	if f.groups == nil {
		f.groups = make(map[uuid.UUID][]domain.AccompanimentGroup)
	}
	f.groups[foodID] = groups
	return nil
}

type fakeEvents struct {
	topics []interfaces.RefreshTopic
}

func (f *fakeEvents) Publish(ctx context.Context, msg interfaces.RefreshMessage) error {
	f.topics = append(f.topics, msg.Topic)
	return nil
}

func placedCommand(t *testing.T) *domain.Command {
	t.Helper()
	cmd, err := domain.NewCommand(uuid.New(), domain.CommandOnSite, []domain.FoodLineItem{{
		Item:     domain.Food{ID: uuid.New(), Name: "Thiebou dieune", Price: domain.Money{Amount: 900, Currency: "EUR"}},
		Quantity: 1,
	}}, nil, nil, nil)
	require.NoError(t, err)
	cmd.Code = 41
	return cmd
}

func newTestService(commands *fakeCommands, acc *fakeAccompaniments, events *fakeEvents) *Service {
	return NewService(commands, acc, events, pricing.Engine{}, nopLogger{})
}

func TestValidateCommand(t *testing.T) {
	cmd := placedCommand(t)
	commands := newFakeCommands(cmd)
	events := &fakeEvents{}
	svc := newTestService(commands, &fakeAccompaniments{}, events)

	require.NoError(t, svc.ValidateCommand(context.Background(), cmd.ID))

	assert.True(t, cmd.Validated)
	assert.Equal(t, []uuid.UUID{cmd.ID}, commands.updated)
	assert.Equal(t, []interfaces.RefreshTopic{
		interfaces.TopicRefresh,
		interfaces.TopicRefreshNavigationBar,
	}, events.topics)
}

func TestValidateCommandAlreadyFinalized(t *testing.T) {
	cmd := placedCommand(t)
	require.NoError(t, cmd.MarkRevoked())
	commands := newFakeCommands(cmd)
	events := &fakeEvents{}
	svc := newTestService(commands, &fakeAccompaniments{}, events)

	err := svc.ValidateCommand(context.Background(), cmd.ID)

	assert.ErrorIs(t, err, domain.ErrCommandFinalized)
	assert.Empty(t, commands.updated)
	assert.Empty(t, events.topics, "no refresh on rejected transition")
}

func TestRevokeCommandUnknownID(t *testing.T) {
	svc := newTestService(newFakeCommands(), &fakeAccompaniments{}, &fakeEvents{})

	err := svc.RevokeCommand(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrCommandNotFound)
}

func TestDeleteCommandBroadcastsRefresh(t *testing.T) {
	cmd := placedCommand(t)
	commands := newFakeCommands(cmd)
	events := &fakeEvents{}
	svc := newTestService(commands, &fakeAccompaniments{}, events)

	require.NoError(t, svc.DeleteCommand(context.Background(), cmd.ID))

	assert.Equal(t, []uuid.UUID{cmd.ID}, commands.deleted)
	assert.Len(t, events.topics, 2)
}

func TestCommandBreakdown(t *testing.T) {
	cmd := placedCommand(t)
	svc := newTestService(newFakeCommands(cmd), &fakeAccompaniments{}, &fakeEvents{})

	bd, err := svc.CommandBreakdown(context.Background(), cmd.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(900), bd.Total)
	assert.Equal(t, "EUR", bd.Currency)
}

func TestSaveAccompanimentGroups(t *testing.T) {
	foodID := uuid.New()
	acc := &fakeAccompaniments{}
	events := &fakeEvents{}
	svc := newTestService(newFakeCommands(), acc, events)

	groups := []domain.AccompanimentGroup{
		{ID: uuid.New(), Title: "Sauces", MaxOptions: 2},
		{ID: uuid.New(), Title: "Sides"},
	}
	require.NoError(t, svc.SaveAccompanimentGroups(context.Background(), foodID, groups))

	assert.Len(t, acc.groups[foodID], 2)
	assert.Equal(t, []interfaces.RefreshTopic{interfaces.TopicRefresh}, events.topics)
}

func TestSaveAccompanimentGroupsValidation(t *testing.T) {
	foodID := uuid.New()

	tests := []struct {
		name   string
		groups []domain.AccompanimentGroup
	}{
		{
			name:   "missing title",
			groups: []domain.AccompanimentGroup{{ID: uuid.New()}},
		},
		{
			name:   "negative max options",
			groups: []domain.AccompanimentGroup{{ID: uuid.New(), Title: "Sauces", MaxOptions: -1}},
		},
		{
			name: "negative item price",
			groups: []domain.AccompanimentGroup{{
				ID:    uuid.New(),
				Title: "Sauces",
				Items: []domain.GroupEntry{{
					Item: domain.AccompanimentItem{ID: uuid.New(), Name: "Harissa", Price: domain.Money{Amount: -50, Currency: "EUR"}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &fakeAccompaniments{}
			events := &fakeEvents{}
			svc := newTestService(newFakeCommands(), acc, events)

			err := svc.SaveAccompanimentGroups(context.Background(), foodID, tt.groups)

			assert.ErrorIs(t, err, domain.ErrInvalidAccompaniment)
			assert.Empty(t, acc.groups, "nothing persisted on validation failure")
			assert.Empty(t, events.topics)
		})
	}
}

func TestSaveAccompanimentGroupsStoreFailure(t *testing.T) {
	events := &fakeEvents{}
	svc := newTestService(newFakeCommands(), &fakeAccompaniments{failed: true}, events)

	err := svc.SaveAccompanimentGroups(context.Background(), uuid.New(), []domain.AccompanimentGroup{
		{ID: uuid.New(), Title: "Sauces"},
	})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidAccompaniment, "store failures are not validation errors")
	assert.Empty(t, events.topics, "no refresh when the store rejects the save")
}

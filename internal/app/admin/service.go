package admin

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

// Service is the back-office use-case layer: command management and
// accompaniment-group authoring.
type Service struct {
	commands       interfaces.CommandRepository
	accompaniments interfaces.AccompanimentRepository
	events         interfaces.RefreshPublisher
	engine         pricing.Engine
	logger         logger.Logger
}

func NewService(
	commands interfaces.CommandRepository,
	accompaniments interfaces.AccompanimentRepository,
	events interfaces.RefreshPublisher,
	engine pricing.Engine,
	lgr logger.Logger,
) *Service {
	return &Service{
		commands:       commands,
		accompaniments: accompaniments,
		events:         events,
		engine:         engine,
		logger:         lgr,
	}
}

func (s *Service) ListCommands(ctx context.Context, restaurantID *uuid.UUID) ([]*domain.Command, error) {
	return s.commands.List(ctx, restaurantID)
}

// ValidateCommand marks a command validated. A command that already reached a
// terminal state is rejected unchanged: validated and revoked are mutually
// exclusive and final.
func (s *Service) ValidateCommand(ctx context.Context, id uuid.UUID) error {
	return s.finalize(ctx, id, "command_validated", (*domain.Command).MarkValidated)
}

// RevokeCommand marks a command revoked, under the same exclusion rule.
func (s *Service) RevokeCommand(ctx context.Context, id uuid.UUID) error {
	return s.finalize(ctx, id, "command_revoked", (*domain.Command).MarkRevoked)
}

func (s *Service) finalize(ctx context.Context, id uuid.UUID, action string, mark func(*domain.Command) error) error {
	cmd, err := s.commands.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := mark(cmd); err != nil {
		return err
	}

	if err := s.commands.UpdateFlags(ctx, cmd); err != nil {
		return fmt.Errorf("failed to update command flags: %w", err)
	}

	s.logger.Info(action, fmt.Sprintf("Command %d finalized", cmd.Code), "", map[string]interface{}{
		"command_id": cmd.ID.String(),
		"code":       cmd.Code,
	})

	s.broadcastRefresh(ctx)
	return nil
}

func (s *Service) DeleteCommand(ctx context.Context, id uuid.UUID) error {
	if err := s.commands.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("command_deleted", "Command deleted", "", map[string]interface{}{
		"command_id": id.String(),
	})

	s.broadcastRefresh(ctx)
	return nil
}

// CommandBreakdown reprices a stored command for the admin detail/print view.
func (s *Service) CommandBreakdown(ctx context.Context, id uuid.UUID) (*pricing.CommandBreakdown, error) {
	cmd, err := s.commands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.engine.Breakdown(cmd)
}

func (s *Service) AccompanimentGroups(ctx context.Context, foodID uuid.UUID) ([]domain.AccompanimentGroup, error) {
	return s.accompaniments.ListByFood(ctx, foodID)
}

// SaveAccompanimentGroups replaces a food's full ordered group collection.
// Nothing is applied when validation or the store rejects the collection.
func (s *Service) SaveAccompanimentGroups(ctx context.Context, foodID uuid.UUID, groups []domain.AccompanimentGroup) error {
	for i, g := range groups {
		if g.Title == "" {
			return fmt.Errorf("%w: group %d: title is required", domain.ErrInvalidAccompaniment, i)
		}
		if g.MaxOptions < 0 {
			return fmt.Errorf("%w: group %q: max options must not be negative", domain.ErrInvalidAccompaniment, g.Title)
		}
		for _, entry := range g.Items {
			if entry.Item.Price.Amount < 0 {
				return fmt.Errorf("%w: group %q: item %q has a negative price", domain.ErrInvalidAccompaniment, g.Title, entry.Item.Name)
			}
		}
	}

	if err := s.accompaniments.ReplaceAll(ctx, foodID, groups); err != nil {
		return err
	}

	s.logger.Debug("accompaniments_saved", "Accompaniment groups replaced", "", map[string]interface{}{
		"food_id": foodID.String(),
		"groups":  len(groups),
	})

	s.publish(ctx, interfaces.TopicRefresh)
	return nil
}

// broadcastRefresh notifies every screen that server-side command state
// changed. Fire-and-forget: a lost broadcast only delays a refetch.
func (s *Service) broadcastRefresh(ctx context.Context) {
	s.publish(ctx, interfaces.TopicRefresh)
	s.publish(ctx, interfaces.TopicRefreshNavigationBar)
}

func (s *Service) publish(ctx context.Context, topic interfaces.RefreshTopic) {
	err := s.events.Publish(ctx, interfaces.RefreshMessage{
		Topic:     topic,
		Origin:    "admin",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("refresh_publish_failed", "Failed to publish refresh event", "", map[string]interface{}{
			"topic": string(topic),
		}, err)
	}
}

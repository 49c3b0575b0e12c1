package interfaces

import (
	"context"
	"time"
)

// RefreshTopic is the closed set of cross-screen refresh notifications. The
// channel is fire-and-forget: no delivery guarantee and no payload beyond the
// topic and its origin.
type RefreshTopic string

const (
	// TopicRefresh tells every screen holding a cached list to refetch.
	TopicRefresh RefreshTopic = "refresh"
	// TopicRefreshNavigationBar tells the navigation surfaces (cart badge,
	// pending-command counters) to refetch.
	TopicRefreshNavigationBar RefreshTopic = "refresh_navigation_bar"
)

type RefreshMessage struct {
	Topic     RefreshTopic `json:"topic"`
	Origin    string       `json:"origin"`
	Timestamp time.Time    `json:"timestamp"`
}

type RefreshPublisher interface {
	Publish(ctx context.Context, msg RefreshMessage) error
}

type RefreshHandler func(ctx context.Context, msg RefreshMessage) error

// RefreshSubscriber delivers refresh broadcasts until ctx is cancelled; the
// subscription is scoped to the caller's lifecycle and unregisters itself on
// cancel, so an unmounted consumer never receives a stale delivery.
type RefreshSubscriber interface {
	Subscribe(ctx context.Context, handler RefreshHandler) error
}

package kafka

import (
	"context"
	"fmt"

	appuser "usersvc/internal/app/user"
	"usersvc/internal/config"
	"usersvc/internal/logging"
)

const (
	UserCreatedType = "UserCreated"
	UserUpdatedType = "UserUpdated"
	UserDeletedType = "UserDeleted"
)

// UserDeletedPayload is the body of a UserDeleted event.
type UserDeletedPayload struct {
	ID int64 `json:"id"`
}

type userEvents struct {
	bus         Bus
	topicPrefix string
	logger      logging.Logger
}

func NewUserEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) appuser.Events {
	return &userEvents{
		bus:         bus,
		topicPrefix: cfg.TopicPrefix,
		logger:      logger.With("component", "user_events"),
	}
}

func usersTopic(prefix string) string {
	return prefix + "users"
}

func (e *userEvents) UserCreated(ctx context.Context, u *appuser.User) error {
	if err := e.bus.Publish(ctx, usersTopic(e.topicPrefix), UserCreatedType, u); err != nil {
		return fmt.Errorf("publish UserCreated: %w", err)
	}
	return nil
}

func (e *userEvents) UserUpdated(ctx context.Context, u *appuser.User) error {
	if err := e.bus.Publish(ctx, usersTopic(e.topicPrefix), UserUpdatedType, u); err != nil {
		return fmt.Errorf("publish UserUpdated: %w", err)
	}
	return nil
}

func (e *userEvents) UserDeleted(ctx context.Context, id int64) error {
	if err := e.bus.Publish(ctx, usersTopic(e.topicPrefix), UserDeletedType, UserDeletedPayload{ID: id}); err != nil {
		return fmt.Errorf("publish UserDeleted: %w", err)
	}
	return nil
}

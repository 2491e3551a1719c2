package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"

	"usersvc/internal/cache"
	"usersvc/internal/config"
	"usersvc/internal/logging"
)

type Router struct {
	router *message.Router
}

// NewRouter subscribes to the users topic and marks deleted users in the
// shared cache. It repeats the invalidation done by the deleting replica, so
// a failed best-effort cache write there does not leave a deleted user cached.
func NewRouter(
	ctx context.Context,
	cfg config.KafkaConfig,
	userCache cache.UserCache,
	baseLogger logging.Logger,
) (*Router, error) {
	if !cfg.Enabled {
		return &Router{router: nil}, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	router, err := message.NewRouter(message.RouterConfig{}, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	subCfg := kafka.SubscriberConfig{
		Brokers:       cfg.Brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: cfg.GroupID,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
		NackResendSleep:     5 * time.Second,
		ReconnectRetrySleep: 10 * time.Second,
	}

	subscriber, err := kafka.NewSubscriber(subCfg, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	topic := usersTopic(cfg.TopicPrefix)

	router.AddHandler(
		"user-cache-invalidation",
		topic,
		subscriber,
		"",  // no output topic, we're just handling side-effects
		nil, // no publisher (no out topic)
		cacheInvalidationHandler(userCache, baseLogger.With("component", "user_cache_invalidation", "topic", topic)),
	)

	return &Router{router: router}, nil
}

// cacheInvalidationHandler invalidates the cached user on UserDeleted.
// UserUpdated is left alone: the updating replica already wrote the new value,
// and evicting it would reopen the entry to a stale read-through fill.
// Undecodable messages are logged and acked.
func cacheInvalidationHandler(userCache cache.UserCache, logger logging.Logger) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		env, err := decodeEnvelope(msg)
		if err != nil {
			logger.Warn("dropping malformed envelope", "uuid", msg.UUID, "error", err)
			return nil, nil
		}

		if env.Type != UserDeletedType {
			return nil, nil
		}

		var p UserDeletedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil || p.ID == 0 {
			logger.Warn("dropping event without user id", "uuid", msg.UUID, "type", env.Type)
			return nil, nil
		}
		id := p.ID

		if err := userCache.Invalidate(msg.Context(), id); err != nil {
			// Nack so the message is redelivered.
			return nil, fmt.Errorf("invalidate user %d: %w", id, err)
		}
		logger.Debug("invalidated cached user", "id", id, "type", env.Type, "correlation_id", env.CorrelationID)
		return nil, nil
	}
}

func (r *Router) Run(ctx context.Context) error {
	if r.router == nil {
		return nil // Kafka disabled
	}
	return r.router.Run(ctx)
}

func (r *Router) Close(ctx context.Context) error {
	if r.router == nil {
		return nil
	}
	return r.router.Close()
}

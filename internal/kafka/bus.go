package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Bus publishes domain events wrapped in an Envelope.
type Bus interface {
	Publish(ctx context.Context, topic string, msgType string, payload any) error
}

// Envelope is the wire format of every message on the users topic.
type Envelope struct {
	MessageID     string          `json:"messageId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

func decodeEnvelope(msg *message.Message) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope %s: %w", msg.UUID, err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope %s: missing type", msg.UUID)
	}
	return env, nil
}

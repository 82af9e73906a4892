package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"time"
)

const PasswordResetTopic = "password-reset"

// ErrNotConfigured is returned when no transport for notifications is configured.
var ErrNotConfigured = errors.New("no notification transport configured")

// PasswordReset is published when a user asks for a reset link.
type PasswordReset struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	RequestedAt time.Time `json:"requestedAt"`
}

type Notifier interface {
	PasswordReset(ctx context.Context, event PasswordReset) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier hands events to the mail worker through a kafka topic.
type KafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireOne,
		},
	}
}

func (n *KafkaNotifier) PasswordReset(ctx context.Context, event PasswordReset) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal password reset event: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte("user.password-reset." + event.UserID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish password reset event: %w", err)
	}

	log.Info().Str("userId", event.UserID).Msg("password reset event published")
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// Unconfigured fails every event so callers never report a notification that was not sent.
type Unconfigured struct{}

func (Unconfigured) PasswordReset(ctx context.Context, event PasswordReset) error {
	return ErrNotConfigured
}

// LogNotifier logs events instead of delivering them. Development only; it must be
// enabled explicitly with kafka.logOnly.
type LogNotifier struct{}

func (LogNotifier) PasswordReset(ctx context.Context, event PasswordReset) error {
	log.Warn().
		Str("userId", event.UserID).
		Str("email", event.Email).
		Msg("log-only notifier, password reset event not delivered")
	return nil
}

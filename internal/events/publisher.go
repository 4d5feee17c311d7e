package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"productlab/studyhub/internal/model"
)

const subjectSignupAccepted = "signup.accepted"

type EventPublisher interface {
	PublishSignupAccepted(ctx context.Context, signup *model.StudySignup, created bool) error
	Close()
}

// SignupAcceptedEvent is emitted after an admission commits. Created is false
// when the participant resubmitted and their existing signup was updated.
type SignupAcceptedEvent struct {
	EventType  string    `json:"event_type"`
	SignupID   int64     `json:"signup_id"`
	StudyID    int64     `json:"study_id"`
	Email      string    `json:"email"`
	Created    bool      `json:"created"`
	AcceptedAt time.Time `json:"accepted_at"`
}

func NewSignupAcceptedEvent(signup *model.StudySignup, created bool, at time.Time) SignupAcceptedEvent {
	return SignupAcceptedEvent{
		EventType:  subjectSignupAccepted,
		SignupID:   signup.ID,
		StudyID:    signup.StudyID,
		Email:      signup.Email,
		Created:    created,
		AcceptedAt: at.UTC(),
	}
}

type NatsPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        *zap.Logger
}

func NewNatsPublisher(natsURL, subjectPrefix string, logger *zap.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("studyhub"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NatsPublisher{conn: nc, subjectPrefix: subjectPrefix, logger: logger}, nil
}

func (p *NatsPublisher) subject(name string) string {
	if p.subjectPrefix == "" {
		return name
	}
	return p.subjectPrefix + "." + name
}

func (p *NatsPublisher) PublishSignupAccepted(ctx context.Context, signup *model.StudySignup, created bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewSignupAcceptedEvent(signup, created, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal signup event: %w", err)
	}

	subject := p.subject(subjectSignupAccepted)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.logger.Debug("published event",
		zap.String("subject", subject),
		zap.Int64("signup_id", signup.ID),
	)
	return nil
}

// Close flushes buffered messages before closing the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats drain failed", zap.Error(err))
	}
}

// NoopPublisher drops every event. Used when events.backend is "none".
type NoopPublisher struct{}

func (NoopPublisher) PublishSignupAccepted(context.Context, *model.StudySignup, bool) error {
	return nil
}

func (NoopPublisher) Close() {}

var (
	_ EventPublisher = (*NatsPublisher)(nil)
	_ EventPublisher = NoopPublisher{}
)

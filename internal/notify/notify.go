// Package notify announces finished parity runs on a message bus.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/exposeparity/internal/logfields"
	"git.home.luguber.info/inful/exposeparity/internal/retry"
)

// Event summarizes one finished run.
type Event struct {
	RunID      string         `json:"run_id,omitempty"`
	InputDir   string         `json:"input_dir"`
	Left       string         `json:"left"`
	Right      string         `json:"right"`
	Passed     bool           `json:"passed"`
	Counts     map[string]int `json:"counts"`
	Commit     string         `json:"commit,omitempty"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Publisher delivers run events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event (default when no bus is configured).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

// natsConn is the subset of *nats.Conn the publisher needs.
type natsConn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSPublisher publishes events as JSON on a NATS subject.
type NATSPublisher struct {
	conn    natsConn
	subject string
	timeout time.Duration
	retry   retry.Policy
}

// NewNATSPublisher connects to url and publishes to subject.
func NewNATSPublisher(url, subject string, timeout time.Duration) (*NATSPublisher, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	conn, err := nats.Connect(url, nats.Name("exposeparity"), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Debug("NATS publisher connected", "url", url, logfields.Subject(subject))
	return &NATSPublisher{conn: conn, subject: subject, timeout: timeout}, nil
}

// WithRetry sets the policy for retrying failed publishes.
func (p *NATSPublisher) WithRetry(policy retry.Policy) *NATSPublisher {
	p.retry = policy
	return p
}

// Publish sends the event and waits for the server to acknowledge the flush,
// retrying according to the configured policy.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.retry.Do(ctx, func(attempt int) error {
		if attempt > 0 {
			slog.Debug("Retrying run event", logfields.Subject(p.subject), "attempt", attempt)
		}
		return p.publishOnce(ctx, data)
	})
	if err != nil {
		return err
	}

	slog.Debug("Published run event", logfields.Subject(p.subject), logfields.RunID(event.RunID))
	return nil
}

func (p *NATSPublisher) publishOnce(ctx context.Context, data []byte) error {
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// Package store is the record backend for dispatch.
//
// Records (service calls, certificates, customer documents, disputes and
// dispute messages) are appended as events to a JetStream stream and reduced
// into a State on read. Directory data (operator profiles, customers) and the
// chat-context hand-off live in JetStream KV buckets.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/nats"
	natsserver "github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Event is one append-only record change.
type Event struct {
	ID        string          `json:"id"` // record id
	Timestamp time.Time       `json:"timestamp"`
	Entity    string          `json:"entity"` // service_call, certificate, ...
	Action    string          `json:"action"` // upsert, status, resolve, add
	Actor     string          `json:"actor"`
	Data      json.RawMessage `json:"data"`
}

// Event actions.
const (
	ActionUpsert  = "upsert"
	ActionStatus  = "status"
	ActionResolve = "resolve"
	ActionAdd     = "add"
)

// Store is the record backend. It is safe for use from one process at a
// time per operation; JetStream orders concurrent writers.
type Store struct {
	js      jetstream.JetStream
	stream  jetstream.Stream
	buckets *nats.Buckets
	actor   string
	now     func() time.Time
}

// NewStore creates a Store over an existing stream and buckets.
func NewStore(js jetstream.JetStream, stream jetstream.Stream, buckets *nats.Buckets, actor string) *Store {
	return &Store{
		js:      js,
		stream:  stream,
		buckets: buckets,
		actor:   actor,
		now:     time.Now,
	}
}

// Open connects to the dispatch server owning dataDir, starting an embedded
// one if none is running. The returned close function releases everything
// Open acquired.
func Open(ctx context.Context, dataDir, actor string) (*Store, func() error, error) {
	var (
		nc  *natsgo.Conn
		ns  *natsserver.Server
		err error
	)

	if port, perr := nats.ReadPort(dataDir); perr == nil {
		nc, err = nats.ConnectToPort(port)
		if err != nil {
			logger.Warn("Stale port file in %s (port %d): %v", dataDir, port, err)
			nats.RemovePort(dataDir)
		}
	}

	if nc == nil {
		ns, _, err = nats.StartEmbeddedNATS(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("starting nats: %w", err)
		}
		nc, err = nats.ConnectInProcess(ns)
		if err != nil {
			ns.Shutdown()
			nats.RemovePort(dataDir)
			return nil, nil, fmt.Errorf("connecting to nats: %w", err)
		}
	}

	closeFn := func() error {
		err := nats.Shutdown(nc, ns)
		if ns != nil {
			nats.RemovePort(dataDir)
		}
		return err
	}

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("setting up stream: %w", err)
	}

	buckets, err := nats.SetupBuckets(ctx, js)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	return NewStore(js, stream, buckets, actor), closeFn, nil
}

// Actor returns the identifier writes are attributed to.
func (s *Store) Actor() string {
	if s.actor == "" {
		return "unknown"
	}
	return s.actor
}

// publish appends an event for entity/action with data marshaled as JSON.
func (s *Store) publish(ctx context.Context, entity, action, id string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s: %w", entity, err)
	}

	event := Event{
		ID:        id,
		Timestamp: s.now(),
		Entity:    entity,
		Action:    action,
		Actor:     s.Actor(),
		Data:      raw,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEntity(entity)
	logger.Debug("Publishing event: entity=%s action=%s id=%s", entity, action, id)

	ack, err := s.js.Publish(ctx, subject, body)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return Event{}, fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Debug("Event published: seq=%d", ack.Sequence)
	return event, nil
}

// LoadState rebuilds every record by reading and reducing the event stream.
func (s *Store) LoadState(ctx context.Context) (*State, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		logger.Error("Failed to create consumer: %v", err)
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}
	defer func() {
		_ = s.stream.DeleteConsumer(context.WithoutCancel(ctx), consumer.CachedInfo().Name)
	}()

	state := NewState()

	const batchSize = 1000
	malformed := 0
	total := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			total++

			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				meta, _ := msg.Metadata()
				if meta != nil {
					logger.Warn("Skipping malformed event (seq=%d): %v", meta.Sequence.Stream, err)
				}
				_ = msg.Ack()
				continue
			}

			state.Apply(event)
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed events while loading state", malformed)
	}
	logger.Debug("State loaded: %d events, %d service calls, %d certificates",
		total, len(state.ServiceCalls), len(state.Certificates))

	return state, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/nats"
)

// ErrDisputeResolved is returned when writing to a closed dispute.
var ErrDisputeResolved = errors.New("dispute is resolved")

// OpenDispute raises a dispute against a document. A non-empty body is posted
// as the first message of the thread.
func (s *Store) OpenDispute(ctx context.Context, documentID, subject, body string) (*Dispute, error) {
	doc, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = doc.Title
	}

	d := Dispute{
		Meta:       Meta{ID: uuid.NewString()},
		DocumentID: doc.ID,
		Customer:   doc.Customer,
		Subject:    subject,
		Status:     DisputeOpen,
	}
	if _, err := s.publish(ctx, nats.EntityDispute, ActionUpsert, d.ID, d); err != nil {
		return nil, err
	}
	logger.Info("Opened dispute %s on document %s", d.ID, doc.ID)

	if strings.TrimSpace(body) != "" {
		if _, err := s.AddDisputeMessage(ctx, d.ID, body); err != nil {
			return nil, err
		}
	}
	return s.GetDispute(ctx, d.ID)
}

// AddDisputeMessage appends a message to an open dispute's thread.
func (s *Store) AddDisputeMessage(ctx context.Context, disputeID, body string) (*DisputeMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	d, err := s.GetDispute(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if d.Status == DisputeResolved {
		return nil, fmt.Errorf("dispute %s: %w", disputeID, ErrDisputeResolved)
	}

	msg := DisputeMessage{
		Meta:      Meta{ID: uuid.NewString()},
		DisputeID: disputeID,
		Body:      body,
	}
	event, err := s.publish(ctx, nats.EntityDisputeMessage, ActionAdd, msg.ID, msg)
	if err != nil {
		return nil, err
	}
	msg.Meta = created(event)
	return &msg, nil
}

// ResolveDispute closes a dispute. Resolving twice is a no-op.
func (s *Store) ResolveDispute(ctx context.Context, disputeID string) error {
	d, err := s.GetDispute(ctx, disputeID)
	if err != nil {
		return err
	}
	if d.Status == DisputeResolved {
		return nil
	}
	_, err = s.publish(ctx, nats.EntityDispute, ActionResolve, disputeID, struct{}{})
	return err
}

// GetDispute returns the dispute with id.
func (s *Store) GetDispute(ctx context.Context, id string) (*Dispute, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := state.Disputes[id]
	if !ok {
		return nil, fmt.Errorf("dispute %s: %w", id, ErrNotFound)
	}
	return d, nil
}

// ListDisputes returns the disputes matching q.
func (s *Store) ListDisputes(ctx context.Context, q Query) ([]*Dispute, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	return apply(q, values(state.Disputes)), nil
}

// Thread returns a dispute's messages, oldest first.
func (s *Store) Thread(ctx context.Context, disputeID string) ([]*DisputeMessage, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Disputes[disputeID]; !ok {
		return nil, fmt.Errorf("dispute %s: %w", disputeID, ErrNotFound)
	}
	return state.Thread(disputeID), nil
}

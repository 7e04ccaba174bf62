package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/nats"
)

// SaveServiceCall creates (empty id) or replaces a service call.
func (s *Store) SaveServiceCall(ctx context.Context, id string, call *draft.ServiceCall) (*ServiceCall, error) {
	if call == nil {
		return nil, fmt.Errorf("service call is nil")
	}
	if call.Status == "" {
		call.Status = draft.StatusPending
	}
	if !draft.ValidStatus(call.Status) {
		return nil, fmt.Errorf("invalid status %q", call.Status)
	}

	if id == "" {
		id = uuid.NewString()
	} else if _, err := s.GetServiceCall(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.publish(ctx, nats.EntityServiceCall, ActionUpsert, id, call); err != nil {
		return nil, err
	}
	logger.Info("Saved service call %s for %s", id, call.Customer)
	return s.GetServiceCall(ctx, id)
}

// GetServiceCall returns the service call with id.
func (s *Store) GetServiceCall(ctx context.Context, id string) (*ServiceCall, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	call, ok := state.ServiceCalls[id]
	if !ok {
		return nil, fmt.Errorf("service call %s: %w", id, ErrNotFound)
	}
	return call, nil
}

// ListServiceCalls returns the service calls matching q.
func (s *Store) ListServiceCalls(ctx context.Context, q Query) ([]*ServiceCall, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	return apply(q, values(state.ServiceCalls)), nil
}

// SetServiceCallStatus moves a service call to status.
func (s *Store) SetServiceCallStatus(ctx context.Context, id, status string) error {
	if !draft.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	if _, err := s.GetServiceCall(ctx, id); err != nil {
		return err
	}
	_, err := s.publish(ctx, nats.EntityServiceCall, ActionStatus, id, statusChange{Status: status})
	return err
}

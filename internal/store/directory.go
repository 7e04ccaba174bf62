package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/nats-io/nats.go/jetstream"
)

// PutProfile creates or replaces a staff profile. An empty ID is derived from
// the name.
func (s *Store) PutProfile(ctx context.Context, p Profile) (Profile, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Profile{}, fmt.Errorf("profile name is required")
	}
	if p.Role == "" {
		p.Role = RoleOperator
	}
	if p.ID == "" {
		p.ID = keyFor(p.Name)
	}
	if err := putJSON(ctx, s.buckets.Profiles, p.ID, p); err != nil {
		return Profile{}, fmt.Errorf("saving profile: %w", err)
	}
	return p, nil
}

// GetProfile returns the profile with id.
func (s *Store) GetProfile(ctx context.Context, id string) (Profile, error) {
	var p Profile
	if err := getJSON(ctx, s.buckets.Profiles, id, &p); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", id, err)
	}
	return p, nil
}

// ListProfiles returns profiles sorted by name. A non-empty role filters them.
func (s *Store) ListProfiles(ctx context.Context, role string) ([]Profile, error) {
	all, err := listJSON[Profile](ctx, s.buckets.Profiles)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	out := all[:0]
	for _, p := range all {
		if role == "" || p.Role == role {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Operators returns the profiles assignable to service calls.
func (s *Store) Operators(ctx context.Context) ([]Profile, error) {
	return s.ListProfiles(ctx, RoleOperator)
}

// PutCustomer creates or replaces a customer. An empty ID is derived from the
// name.
func (s *Store) PutCustomer(ctx context.Context, c Customer) (Customer, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Customer{}, fmt.Errorf("customer name is required")
	}
	if c.ID == "" {
		c.ID = keyFor(c.Name)
	}
	if err := putJSON(ctx, s.buckets.Customers, c.ID, c); err != nil {
		return Customer{}, fmt.Errorf("saving customer: %w", err)
	}
	return c, nil
}

// GetCustomer returns the customer with id.
func (s *Store) GetCustomer(ctx context.Context, id string) (Customer, error) {
	var c Customer
	if err := getJSON(ctx, s.buckets.Customers, id, &c); err != nil {
		return Customer{}, fmt.Errorf("customer %s: %w", id, err)
	}
	return c, nil
}

// ListCustomers returns every customer sorted by name.
func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	all, err := listJSON[Customer](ctx, s.buckets.Customers)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// keyFor derives a bucket key from a display name.
func keyFor(name string) string {
	if key := slug.Make(name); key != "" {
		return key
	}
	return uuid.NewString()
}

func putJSON(ctx context.Context, kv jetstream.KeyValue, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = kv.Put(ctx, key, data)
	return err
}

func getJSON(ctx context.Context, kv jetstream.KeyValue, key string, v any) error {
	entry, err := kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(entry.Value(), v)
}

func listJSON[T any](ctx context.Context, kv jetstream.KeyValue) ([]T, error) {
	keys, err := kv.Keys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		var v T
		err := getJSON(ctx, kv, key, &v)
		if errors.Is(err, ErrNotFound) {
			continue // deleted between Keys and Get
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

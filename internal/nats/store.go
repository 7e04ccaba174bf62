package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "dispatch_events"

// Entity names used in event subjects.
const (
	EntityServiceCall    = "service_call"
	EntityCertificate    = "certificate"
	EntityDocument       = "customer_document"
	EntityDispute        = "dispute"
	EntityDisputeMessage = "dispute_message"
)

// KV bucket names.
const (
	BucketProfiles    = "dispatch_profiles"
	BucketCustomers   = "dispatch_customer_quotes"
	BucketChatContext = "dispatch_chat_context"
)

// ChatContextTTL bounds how long an unread chat context survives.
const ChatContextTTL = 15 * time.Minute

// SubjectForEntity returns the subject events for an entity are published on.
// Example: "dispatch.service_call"
func SubjectForEntity(entity string) string {
	return fmt.Sprintf("dispatch.%s", entity)
}

// SetupStream creates or updates the JetStream stream holding every record event.
// Records are kept indefinitely; they are the system of record.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"dispatch.>"},
		Storage:  jetstream.FileStorage,
	})
}

// Buckets groups the KV stores used for directory data and hand-off state.
type Buckets struct {
	Profiles    jetstream.KeyValue
	Customers   jetstream.KeyValue
	ChatContext jetstream.KeyValue
}

// SetupBuckets creates or updates the KV buckets.
func SetupBuckets(ctx context.Context, js jetstream.JetStream) (*Buckets, error) {
	profiles, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  BucketProfiles,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("creating profiles bucket: %w", err)
	}

	customers, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  BucketCustomers,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("creating customers bucket: %w", err)
	}

	chat, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  BucketChatContext,
		Storage: jetstream.MemoryStorage,
		TTL:     ChatContextTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat context bucket: %w", err)
	}

	return &Buckets{Profiles: profiles, Customers: customers, ChatContext: chat}, nil
}

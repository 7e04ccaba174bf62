package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/dispatch/internal/nats"
)

// AddDocument files a customer document. An empty ID creates a new one.
func (s *Store) AddDocument(ctx context.Context, doc Document) (*Document, error) {
	if strings.TrimSpace(doc.Customer) == "" {
		return nil, fmt.Errorf("document customer is required")
	}
	if doc.Kind == "" {
		doc.Kind = DocumentQuote
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if _, err := s.publish(ctx, nats.EntityDocument, ActionUpsert, doc.ID, doc); err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, doc.ID)
}

// SetDocumentPath records where a document's rendered file was written.
func (s *Store) SetDocumentPath(ctx context.Context, id, path string) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	updated := *doc
	updated.Path = path
	_, err = s.publish(ctx, nats.EntityDocument, ActionUpsert, id, updated)
	return err
}

// GetDocument returns the document with id.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	doc, ok := state.Documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return doc, nil
}

// DocumentFor returns the document filed for a certificate or quote.
func (s *Store) DocumentFor(ctx context.Context, refID string) (*Document, error) {
	docs, err := s.ListDocuments(ctx, Query{Where: map[string]string{"refId": refID}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("document for %s: %w", refID, ErrNotFound)
	}
	return docs[0], nil
}

// ListDocuments returns the documents matching q.
func (s *Store) ListDocuments(ctx context.Context, q Query) ([]*Document, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	return apply(q, values(state.Documents)), nil
}

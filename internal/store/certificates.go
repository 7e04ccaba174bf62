package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/nats"
)

// SaveCertificate creates (empty id) or replaces a delivery certificate.
//
// A new certificate is also filed as a customer document. When the
// certificate was converted from a service call, that call is marked
// completed.
func (s *Store) SaveCertificate(ctx context.Context, id string, cert *draft.Certificate) (*Certificate, error) {
	if cert == nil {
		return nil, fmt.Errorf("certificate is nil")
	}

	isNew := id == ""
	if isNew {
		id = uuid.NewString()
	} else if _, err := s.GetCertificate(ctx, id); err != nil {
		return nil, err
	}

	if cert.Status == "" {
		cert.Status = draft.StatusCompleted
	}

	if _, err := s.publish(ctx, nats.EntityCertificate, ActionUpsert, id, cert); err != nil {
		return nil, err
	}

	if cert.ServiceCallID != "" {
		err := s.SetServiceCallStatus(ctx, cert.ServiceCallID, draft.StatusCompleted)
		switch {
		case errors.Is(err, ErrNotFound):
			logger.Warn("Certificate %s references missing service call %s", id, cert.ServiceCallID)
		case err != nil:
			return nil, fmt.Errorf("completing service call: %w", err)
		}
	}

	if isNew {
		_, err := s.AddDocument(ctx, Document{
			Customer: cert.Customer,
			Kind:     DocumentCertificate,
			Title:    CertificateTitle(cert),
			RefID:    id,
		})
		if err != nil {
			return nil, fmt.Errorf("filing certificate document: %w", err)
		}
	}

	logger.Info("Saved certificate %s for %s", id, cert.Customer)
	return s.GetCertificate(ctx, id)
}

// CertificateTitle is the document title a certificate is filed under.
func CertificateTitle(cert *draft.Certificate) string {
	if cert.Date == "" {
		return "Delivery Certificate"
	}
	return "Delivery Certificate " + cert.Date
}

// GetCertificate returns the certificate with id.
func (s *Store) GetCertificate(ctx context.Context, id string) (*Certificate, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	cert, ok := state.Certificates[id]
	if !ok {
		return nil, fmt.Errorf("certificate %s: %w", id, ErrNotFound)
	}
	return cert, nil
}

// ListCertificates returns the certificates matching q.
func (s *Store) ListCertificates(ctx context.Context, q Query) ([]*Certificate, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	return apply(q, values(state.Certificates)), nil
}

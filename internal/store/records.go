package store

import (
	"time"

	"github.com/mark3labs/dispatch/internal/draft"
)

// sortableTime formats timestamps so they order lexically.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

// Meta is the bookkeeping carried by every stored record.
type Meta struct {
	ID        string    `json:"id"`
	CreatedBy string    `json:"createdBy"`
	UpdatedBy string    `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m Meta) value(field string) (string, bool) {
	switch field {
	case "id":
		return m.ID, true
	case "createdBy":
		return m.CreatedBy, true
	case "updatedBy":
		return m.UpdatedBy, true
	case "createdAt":
		return m.CreatedAt.UTC().Format(sortableTime), true
	case "updatedAt":
		return m.UpdatedAt.UTC().Format(sortableTime), true
	}
	return "", false
}

// ServiceCall is a saved service call.
type ServiceCall struct {
	Meta
	draft.ServiceCall
}

// Value implements Query field lookup.
func (c *ServiceCall) Value(field string) string {
	if v, ok := c.Meta.value(field); ok {
		return v
	}
	return c.ServiceCall.Value(field)
}

// Certificate is a saved delivery certificate.
type Certificate struct {
	Meta
	draft.Certificate
}

// Value implements Query field lookup.
func (c *Certificate) Value(field string) string {
	if v, ok := c.Meta.value(field); ok {
		return v
	}
	return c.Certificate.Value(field)
}

// Document kinds.
const (
	DocumentCertificate = "certificate"
	DocumentQuote       = "quote"
	DocumentInvoice     = "invoice"
)

// Document is a file shared with a customer.
type Document struct {
	Meta
	Customer string `json:"customer"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	RefID    string `json:"refId,omitempty"` // certificate or quote id
	Path     string `json:"path,omitempty"`
}

// Value implements Query field lookup.
func (d *Document) Value(field string) string {
	if v, ok := d.Meta.value(field); ok {
		return v
	}
	switch field {
	case "customer":
		return d.Customer
	case "kind":
		return d.Kind
	case "title":
		return d.Title
	case "refId":
		return d.RefID
	case "path":
		return d.Path
	}
	return ""
}

// Dispute statuses.
const (
	DisputeOpen     = "open"
	DisputeResolved = "resolved"
)

// Dispute is a customer objection raised against a document.
type Dispute struct {
	Meta
	DocumentID string    `json:"documentId"`
	Customer   string    `json:"customer"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	ResolvedAt time.Time `json:"resolvedAt,omitempty"`
}

// Value implements Query field lookup.
func (d *Dispute) Value(field string) string {
	if v, ok := d.Meta.value(field); ok {
		return v
	}
	switch field {
	case "documentId":
		return d.DocumentID
	case "customer":
		return d.Customer
	case "subject":
		return d.Subject
	case "status":
		return d.Status
	}
	return ""
}

// DisputeMessage is one entry in a dispute thread.
type DisputeMessage struct {
	Meta
	DisputeID string `json:"disputeId"`
	Body      string `json:"body"`
}

// Profile roles.
const (
	RoleOperator   = "operator"
	RoleDispatcher = "dispatcher"
)

// Profile is a staff member. Operators are assignable to service calls.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Vehicle string `json:"vehicle,omitempty"` // default vehicle number
}

// Customer is an entry from the customer quotes directory.
type Customer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Contact string   `json:"contact,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Email   string   `json:"email,omitempty"`
	Sites   []string `json:"sites,omitempty"`
}

// ChatContext is handed from the document list to the messaging view.
type ChatContext struct {
	DocumentID string            `json:"documentId"`
	DisputeID  string            `json:"disputeId,omitempty"`
	Customer   string            `json:"customer"`
	Title      string            `json:"title"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

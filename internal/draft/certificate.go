package draft

import (
	"fmt"
	"strings"
)

// Certificate is the form state for a delivery certificate. It carries every
// service call field plus the service and material details recorded on site.
type Certificate struct {
	ServiceCall

	ServiceCallID         string `json:"serviceCallId,omitempty"` // source call when converted
	EndTime               string `json:"endTime"`
	ConcreteType          string `json:"concreteType"`
	CompanyProvides       string `json:"companyProvides"`
	ElementType           string `json:"elementType"`
	WaitingTime           string `json:"waitingTime"` // minutes
	WorkType              string `json:"workType"`
	Transfers             string `json:"transfers"`
	AdditionalPipe        string `json:"additionalPipe"` // meters
	MalkoTeam             bool   `json:"malkoTeam"`
	IncludeConcreteSupply bool   `json:"includeConcreteSupply"`
	AdditionalNotes       string `json:"additionalNotes"`
}

// NewCertificate returns an empty certificate draft.
func NewCertificate() *Certificate {
	return &Certificate{ServiceCall: *NewServiceCall()}
}

// FromServiceCall seeds a certificate from a saved service call. The call's
// notes carry over as the certificate's general notes.
func FromServiceCall(id string, call *ServiceCall) *Certificate {
	c := &Certificate{ServiceCall: *call.Clone(), ServiceCallID: id}
	c.Status = StatusCompleted
	return c
}

// Value returns a field's value as text.
func (c *Certificate) Value(field string) string {
	switch field {
	case FieldEndTime:
		return c.EndTime
	case FieldConcreteType:
		return c.ConcreteType
	case FieldCompanyProvides:
		return c.CompanyProvides
	case FieldElementType:
		return c.ElementType
	case FieldWaitingTime:
		return c.WaitingTime
	case FieldWorkType:
		return c.WorkType
	case FieldTransfers:
		return c.Transfers
	case FieldAdditionalPipe:
		return c.AdditionalPipe
	case FieldMalkoTeam:
		return FormatBool(c.MalkoTeam)
	case FieldIncludeConcreteSupply:
		return FormatBool(c.IncludeConcreteSupply)
	case FieldAdditionalNotes:
		return c.AdditionalNotes
	case FieldServiceCallID:
		return c.ServiceCallID
	}
	return c.ServiceCall.Value(field)
}

// Set assigns a field from text.
func (c *Certificate) Set(field, value string) error {
	trimmed := strings.TrimSpace(value)
	switch field {
	case FieldEndTime:
		c.EndTime = trimmed
	case FieldConcreteType:
		c.ConcreteType = trimmed
	case FieldCompanyProvides:
		c.CompanyProvides = trimmed
	case FieldElementType:
		c.ElementType = trimmed
	case FieldWaitingTime:
		c.WaitingTime = trimmed
	case FieldWorkType:
		c.WorkType = trimmed
	case FieldTransfers:
		c.Transfers = trimmed
	case FieldAdditionalPipe:
		c.AdditionalPipe = trimmed
	case FieldMalkoTeam, FieldIncludeConcreteSupply:
		b, err := ParseBool(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if field == FieldMalkoTeam {
			c.MalkoTeam = b
		} else {
			c.IncludeConcreteSupply = b
		}
	case FieldAdditionalNotes:
		c.AdditionalNotes = trimmed
	case FieldServiceCallID:
		c.ServiceCallID = trimmed
	default:
		return c.ServiceCall.Set(field, value)
	}
	return nil
}

// Clone returns an independent copy.
func (c *Certificate) Clone() *Certificate {
	cp := *c
	return &cp
}

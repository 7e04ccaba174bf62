package draft

import (
	"fmt"
	"strings"
)

// Service call statuses.
const (
	StatusPending    = "pending"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Statuses lists the valid service call statuses in lifecycle order.
var Statuses = []string{StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// ServiceCall is the form state for a scheduled job.
type ServiceCall struct {
	Date          string `json:"date"`      // YYYY-MM-DD
	StartTime     string `json:"startTime"` // free text, e.g. "07:30"
	ServiceType   string `json:"serviceType"`
	Customer      string `json:"customer"`
	ProjectSite   string `json:"projectSite"`
	HourlyBooking bool   `json:"hourlyBooking"`
	PumpType      string `json:"pumpType"`
	Quantity      string `json:"quantity"`
	VehicleNumber string `json:"vehicleNumber"`
	Operator      string `json:"operator"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
}

// NewServiceCall returns an empty draft with the default pending status.
func NewServiceCall() *ServiceCall {
	return &ServiceCall{Status: StatusPending}
}

// Value returns a field's value as text.
func (s *ServiceCall) Value(field string) string {
	switch field {
	case FieldDate:
		return s.Date
	case FieldStartTime:
		return s.StartTime
	case FieldServiceType:
		return s.ServiceType
	case FieldCustomer:
		return s.Customer
	case FieldProjectSite:
		return s.ProjectSite
	case FieldHourlyBooking:
		return FormatBool(s.HourlyBooking)
	case FieldPumpType:
		return s.PumpType
	case FieldQuantity:
		return s.Quantity
	case FieldVehicleNumber:
		return s.VehicleNumber
	case FieldOperator:
		return s.Operator
	case FieldNotes:
		return s.Notes
	case FieldStatus:
		return s.Status
	}
	return ""
}

// Set assigns a field from text.
func (s *ServiceCall) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case FieldDate:
		s.Date = value
	case FieldStartTime:
		s.StartTime = value
	case FieldServiceType:
		s.ServiceType = value
	case FieldCustomer:
		s.Customer = value
	case FieldProjectSite:
		s.ProjectSite = value
	case FieldHourlyBooking:
		b, err := ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		s.HourlyBooking = b
	case FieldPumpType:
		s.PumpType = value
	case FieldQuantity:
		s.Quantity = value
	case FieldVehicleNumber:
		s.VehicleNumber = value
	case FieldOperator:
		s.Operator = value
	case FieldNotes:
		s.Notes = value
	case FieldStatus:
		if value != "" && !ValidStatus(value) {
			return fmt.Errorf("invalid status %q", value)
		}
		s.Status = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Clone returns an independent copy.
func (s *ServiceCall) Clone() *ServiceCall {
	c := *s
	return &c
}

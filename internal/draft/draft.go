// Package draft holds the in-progress form state edited by the wizards.
//
// Drafts are flat records addressed by field name so the wizard engine and
// the step renderers can read and write them without knowing their shape.
package draft

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when setting a field the draft does not have.
var ErrUnknownField = errors.New("unknown field")

// Field names shared by both drafts.
const (
	FieldDate          = "date"
	FieldStartTime     = "startTime"
	FieldServiceType   = "serviceType"
	FieldCustomer      = "customer"
	FieldProjectSite   = "projectSite"
	FieldHourlyBooking = "hourlyBooking"
	FieldPumpType      = "pumpType"
	FieldQuantity      = "quantity"
	FieldVehicleNumber = "vehicleNumber"
	FieldOperator      = "operator"
	FieldNotes         = "notes"
	FieldStatus        = "status"
)

// Certificate-only field names.
const (
	FieldEndTime               = "endTime"
	FieldConcreteType          = "concreteType"
	FieldCompanyProvides       = "companyProvides"
	FieldElementType           = "elementType"
	FieldWaitingTime           = "waitingTime"
	FieldWorkType              = "workType"
	FieldTransfers             = "transfers"
	FieldAdditionalPipe        = "additionalPipe"
	FieldMalkoTeam             = "malkoTeam"
	FieldIncludeConcreteSupply = "includeConcreteSupply"
	FieldAdditionalNotes       = "additionalNotes"
	FieldServiceCallID         = "serviceCallId"
)

// Editor is a draft the step renderers can read and write.
type Editor interface {
	Value(field string) string
	Set(field, value string) error
}

// ParseBool accepts the spellings a user might type for a yes/no field.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "n", "false", "0", "off":
		return false, nil
	case "yes", "y", "true", "1", "on":
		return true, nil
	default:
		return false, fmt.Errorf("not a yes/no value: %q", s)
	}
}

// FormatBool renders a boolean the way Value reports it: "yes" or "" so an
// unset toggle reads as empty.
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// ValidQuantity reports whether s is a positive number of cubic meters.
func ValidQuantity(s string) bool {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && q > 0
}

package wizard

import (
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/steps"
)

// Kind selects the renderer for a field.
type Kind int

const (
	KindText    Kind = iota // single-line input
	KindChoice              // pick one option
	KindToggle              // yes/no
	KindNotes               // multi-line, $EDITOR capable
	KindPreview             // rendered document, no input
)

// Field describes one input on a substep.
type Field struct {
	Name        string // draft field, empty for the preview
	Label       string
	Kind        Kind
	Placeholder string

	// Check returns a message when a non-empty value is malformed.
	Check func(value string) string
}

func text(name, label, placeholder string) Field {
	return Field{Name: name, Label: label, Kind: KindText, Placeholder: placeholder}
}

func choice(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindChoice}
}

func toggle(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindToggle}
}

func notes(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindNotes}
}

func (f Field) withCheck(check func(string) string) Field {
	f.Check = check
	return f
}

func checkDate(v string) string {
	if _, err := time.Parse(calendar.DateLayout, v); err != nil {
		return "Date must look like 2026-03-02"
	}
	return ""
}

func checkTime(v string) string {
	if _, _, ok := calendar.ParseTime(v); !ok {
		return "Time must look like 07:30 or 2 pm"
	}
	return ""
}

func checkQuantity(v string) string {
	if !draft.ValidQuantity(v) {
		return "Quantity must be a positive number"
	}
	return ""
}

func checkNumber(v string) string {
	if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil || n < 0 {
		return "Must be a number"
	}
	return ""
}

// Inputs shared by both flows.
var (
	fieldServiceType = choice(draft.FieldServiceType, "Service type")
	fieldCustomer    = choice(draft.FieldCustomer, "Customer")
	fieldSite        = text(draft.FieldProjectSite, "Project site", "Street, city or site name")
	fieldDate        = text(draft.FieldDate, "Date", "YYYY-MM-DD").withCheck(checkDate)
	fieldStartTime   = text(draft.FieldStartTime, "Start time", "07:30").withCheck(checkTime)
	fieldPumpType    = choice(draft.FieldPumpType, "Pump type")
	fieldQuantity    = text(draft.FieldQuantity, "Quantity (m³)", "42").withCheck(checkQuantity)
	fieldVehicle     = text(draft.FieldVehicleNumber, "Vehicle number", "12-345-67")
	fieldOperator    = choice(draft.FieldOperator, "Operator")
)

// layouts maps tree name -> substep -> inputs rendered on that substep.
var layouts = map[string]map[string][]Field{
	steps.ServiceCall.Name: {
		steps.CallType:      {fieldServiceType},
		steps.CallCustomer:  {fieldCustomer},
		steps.CallSite:      {fieldSite},
		steps.CallSchedule:  {fieldDate, fieldStartTime, toggle(draft.FieldHourlyBooking, "Hourly booking")},
		steps.CallEquipment: {fieldPumpType, fieldQuantity},
		steps.CallOperator:  {fieldOperator, fieldVehicle},
		steps.CallNotes:     {notes(draft.FieldNotes, "Notes")},
	},
	steps.Certificate.Name: {
		"customer":        {fieldCustomer},
		"type":            {fieldServiceType},
		"site":            {fieldSite},
		"date":            {fieldDate},
		"pump":            {fieldPumpType},
		"concrete":        {choice(draft.FieldConcreteType, "Concrete type")},
		"quantity":        {fieldQuantity},
		"element":         {choice(draft.FieldElementType, "Element type")},
		"companyProvides": {choice(draft.FieldCompanyProvides, "Concrete supplied by")},
		"startTime":       {fieldStartTime},
		"endTime":         {text(draft.FieldEndTime, "End time", "11:00").withCheck(checkTime)},
		"vehicle":         {fieldVehicle},
		"operator":        {fieldOperator},
		"waitingTime":     {text(draft.FieldWaitingTime, "Waiting time (minutes)", "0").withCheck(checkNumber)},
		"transfers":       {text(draft.FieldTransfers, "Transfers", "0").withCheck(checkNumber)},
		"pipe":            {text(draft.FieldAdditionalPipe, "Additional pipe (m)", "0").withCheck(checkNumber)},
		"malkoTeam":       {toggle(draft.FieldMalkoTeam, "Malko team on site")},
		"concreteSupply":  {toggle(draft.FieldIncludeConcreteSupply, "Include concrete supply")},
		"notes":           {notes(draft.FieldAdditionalNotes, "Additional notes")},
		"workType":        {choice(draft.FieldWorkType, "Work type")},
		"complete":        {{Label: "Preview", Kind: KindPreview}},
	},
}

// FieldsFor returns the inputs of a substep. Unknown substeps fall back to a
// single text input named after the substep.
func FieldsFor(tree, substep string) []Field {
	if fields, ok := layouts[tree][substep]; ok {
		return fields
	}
	return []Field{text(substep, substep, "")}
}

// staticOptions are the fixed catalogues for choice fields.
var staticOptions = map[string][]draft.Option{
	draft.FieldServiceType:     draft.ServiceTypes,
	draft.FieldPumpType:        draft.PumpTypes,
	draft.FieldConcreteType:    draft.ConcreteTypes,
	draft.FieldElementType:     draft.ElementTypes,
	draft.FieldCompanyProvides: draft.CompanyProvides,
	draft.FieldWorkType:        draft.WorkTypes,
}

// optionsFor returns the options of a choice field. Directory-backed fields
// come from the config; nil means the field should be typed instead.
func optionsFor(field string, cfg *Config) []draft.Option {
	switch field {
	case draft.FieldCustomer:
		return cfg.Customers
	case draft.FieldOperator:
		return cfg.Operators
	}
	return staticOptions[field]
}

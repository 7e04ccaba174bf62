// Package document renders service calls and delivery certificates for the
// terminal preview, the browser print surface and PDF export.
package document

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/dispatch/internal/draft"
)

// Document kinds, also used as file name prefixes.
const (
	KindServiceCall = "service-call"
	KindCertificate = "certificate"
)

// Row is one labeled value. Field is the draft field it came from, if any.
type Row struct {
	Field string
	Label string
	Value string
}

// Section groups rows under a heading.
type Section struct {
	Title string
	Rows  []Row
}

// Document is the rendering-neutral form of a draft.
type Document struct {
	Kind     string
	Title    string
	Company  string
	Customer string
	Date     string
	Sections []Section
	Notes    string

	fields draft.Editor
}

// Value returns the raw draft value of field, or "" when the document was
// not built from a draft.
func (d Document) Value(field string) string {
	if d.fields == nil {
		return ""
	}
	return d.fields.Value(field)
}

type rowSpec struct {
	field   string
	label   string
	options []draft.Option
}

func buildRows(fields draft.Editor, specs []rowSpec) []Row {
	rows := make([]Row, 0, len(specs))
	for _, s := range specs {
		value := fields.Value(s.field)
		if s.options != nil {
			value = draft.Label(s.options, value)
		}
		rows = append(rows, Row{Field: s.field, Label: s.label, Value: value})
	}
	return rows
}

var serviceCallSections = []struct {
	title string
	rows  []rowSpec
}{
	{"Job", []rowSpec{
		{field: draft.FieldServiceType, label: "Service", options: draft.ServiceTypes},
		{field: draft.FieldCustomer, label: "Customer"},
		{field: draft.FieldProjectSite, label: "Project Site"},
	}},
	{"Schedule", []rowSpec{
		{field: draft.FieldDate, label: "Date"},
		{field: draft.FieldStartTime, label: "Start Time"},
		{field: draft.FieldHourlyBooking, label: "Hourly Booking"},
	}},
	{"Equipment", []rowSpec{
		{field: draft.FieldPumpType, label: "Pump", options: draft.PumpTypes},
		{field: draft.FieldQuantity, label: "Quantity (m³)"},
		{field: draft.FieldVehicleNumber, label: "Vehicle"},
		{field: draft.FieldOperator, label: "Operator"},
	}},
}

var certificateSections = []struct {
	title string
	rows  []rowSpec
}{
	{"Basic Details", []rowSpec{
		{field: draft.FieldCustomer, label: "Customer"},
		{field: draft.FieldServiceType, label: "Service", options: draft.ServiceTypes},
		{field: draft.FieldProjectSite, label: "Project Site"},
		{field: draft.FieldDate, label: "Date"},
	}},
	{"Service", []rowSpec{
		{field: draft.FieldPumpType, label: "Pump", options: draft.PumpTypes},
		{field: draft.FieldConcreteType, label: "Concrete", options: draft.ConcreteTypes},
		{field: draft.FieldQuantity, label: "Quantity (m³)"},
		{field: draft.FieldElementType, label: "Element", options: draft.ElementTypes},
		{field: draft.FieldCompanyProvides, label: "Concrete Supplied By", options: draft.CompanyProvides},
	}},
	{"Times", []rowSpec{
		{field: draft.FieldStartTime, label: "Start Time"},
		{field: draft.FieldEndTime, label: "End Time"},
		{field: draft.FieldVehicleNumber, label: "Vehicle"},
		{field: draft.FieldOperator, label: "Operator"},
	}},
	{"Additional Work", []rowSpec{
		{field: draft.FieldWaitingTime, label: "Waiting Time (min)"},
		{field: draft.FieldTransfers, label: "Transfers"},
		{field: draft.FieldAdditionalPipe, label: "Additional Pipe (m)"},
		{field: draft.FieldMalkoTeam, label: "Malko Team"},
		{field: draft.FieldIncludeConcreteSupply, label: "Includes Concrete Supply"},
		{field: draft.FieldWorkType, label: "Work Type", options: draft.WorkTypes},
	}},
}

// ForServiceCall builds the document for a service call.
func ForServiceCall(call *draft.ServiceCall, company string) Document {
	doc := Document{
		Kind:     KindServiceCall,
		Title:    "Service Call",
		Company:  company,
		Customer: call.Customer,
		Date:     call.Date,
		Notes:    call.Notes,
		fields:   call,
	}
	for _, s := range serviceCallSections {
		doc.Sections = append(doc.Sections, Section{Title: s.title, Rows: buildRows(call, s.rows)})
	}
	return doc
}

// ForCertificate builds the document for a delivery certificate. General and
// additional notes are joined.
func ForCertificate(cert *draft.Certificate, company string) Document {
	notes := strings.TrimSpace(strings.Join(nonEmpty(cert.Notes, cert.AdditionalNotes), "\n\n"))
	doc := Document{
		Kind:     KindCertificate,
		Title:    "Delivery Certificate",
		Company:  company,
		Customer: cert.Customer,
		Date:     cert.Date,
		Notes:    notes,
		fields:   cert,
	}
	for _, s := range certificateSections {
		doc.Sections = append(doc.Sections, Section{Title: s.title, Rows: buildRows(cert, s.rows)})
	}
	return doc
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// FileName returns "<kind>-<customer slug>-<date>.<ext>". Missing parts are
// left out.
func FileName(kind, customer, date, ext string) string {
	parts := []string{kind}
	if s := slug.Make(customer); s != "" {
		parts = append(parts, s)
	}
	if date != "" {
		parts = append(parts, slug.Make(date))
	}
	return strings.Join(parts, "-") + "." + strings.TrimPrefix(ext, ".")
}

// FileName returns the document's file name for ext.
func (d Document) FileName(ext string) string {
	return FileName(d.Kind, d.Customer, d.Date, ext)
}

package steps

// Field messages shown when a required field is empty.
var messages = map[string]string{
	"serviceType":   "Please select a service type",
	"customer":      "Please select a customer",
	"projectSite":   "Please enter a project site",
	"date":          "Please select a date",
	"startTime":     "Please enter a start time",
	"endTime":       "Please enter an end time",
	"pumpType":      "Please select a pump type",
	"concreteType":  "Please select a concrete type",
	"quantity":      "Please enter a quantity",
	"elementType":   "Please select an element type",
	"vehicleNumber": "Please enter a vehicle number",
	"operator":      "Please select an operator",
}

// Message returns the required-field message for a draft field.
func Message(field string) string {
	if msg, ok := messages[field]; ok {
		return msg
	}
	return "This field is required"
}

func required(fields ...string) []Rule {
	rules := make([]Rule, 0, len(fields))
	for _, f := range fields {
		rules = append(rules, Rule{Field: f, Message: Message(f)})
	}
	return rules
}

// Service-call flow step identifiers.
const (
	CallType      = "type"
	CallCustomer  = "customer"
	CallSite      = "site"
	CallSchedule  = "schedule"
	CallEquipment = "equipment"
	CallOperator  = "operator"
	CallNotes     = "notes"
)

// ServiceCall is the flat seven-step tree used to create or edit a service call.
var ServiceCall = Tree{
	Name: "service-call",
	Steps: []Main{
		{ID: CallType, Title: "Service Type", Icon: "⚙", Substeps: []string{CallType}},
		{ID: CallCustomer, Title: "Customer", Icon: "👤", Substeps: []string{CallCustomer}},
		{ID: CallSite, Title: "Project Site", Icon: "📍", Substeps: []string{CallSite}},
		{ID: CallSchedule, Title: "Date & Time", Icon: "📅", Substeps: []string{CallSchedule}},
		{ID: CallEquipment, Title: "Equipment", Icon: "🚚", Substeps: []string{CallEquipment}},
		{ID: CallOperator, Title: "Operator", Icon: "👷", Substeps: []string{CallOperator}},
		{ID: CallNotes, Title: "Notes", Icon: "📝", Substeps: []string{CallNotes}},
	},
}

// ServiceCallRules lists the required fields per service-call step.
// The operator may be assigned later, so that step has no rule.
var ServiceCallRules = Rules{
	CallType:      required("serviceType"),
	CallCustomer:  required("customer"),
	CallSite:      required("projectSite"),
	CallSchedule:  required("date", "startTime"),
	CallEquipment: required("pumpType"),
}

// Certificate flow main steps.
const (
	CertBasic     = "basic"
	CertService   = "service"
	CertTimes     = "times"
	CertAdditions = "additions"
	CertPreview   = "preview"
)

// Certificate is the nested tree used to fill in a delivery certificate.
// Conversions from a service call enter at CertAdditions.
var Certificate = Tree{
	Name: "certificate",
	Steps: []Main{
		{
			ID: CertBasic, Title: "Basic Details", Icon: "📋",
			Substeps: []string{"customer", "type", "site", "date"},
		},
		{
			ID: CertService, Title: "Service Details", Icon: "🏗",
			Substeps: []string{"pump", "concrete", "quantity", "element", "companyProvides"},
		},
		{
			ID: CertTimes, Title: "Times & Crew", Icon: "⏱",
			Substeps: []string{"startTime", "endTime", "vehicle", "operator"},
		},
		{
			ID: CertAdditions, Title: "Additional Info", Icon: "➕",
			Substeps: []string{"waitingTime", "transfers", "pipe", "malkoTeam", "concreteSupply", "notes", "workType"},
		},
		{
			ID: CertPreview, Title: "Preview", Icon: "👁",
			Substeps: []string{"complete"},
		},
	},
}

// CertificateRules lists the required fields per certificate substep.
// Nothing under additions or preview is mandatory.
var CertificateRules = Rules{
	"customer":  required("customer"),
	"type":      required("serviceType"),
	"site":      required("projectSite"),
	"date":      required("date"),
	"pump":      required("pumpType"),
	"concrete":  required("concreteType"),
	"quantity":  required("quantity"),
	"element":   required("elementType"),
	"startTime": required("startTime"),
	"endTime":   required("endTime"),
	"vehicle":   required("vehicleNumber"),
	"operator":  required("operator"),
}

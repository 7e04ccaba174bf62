package draft

// Option is a selectable value with a display label.
type Option struct {
	Value string
	Label string
}

// ServiceTypes are the lines of business a call can belong to.
var ServiceTypes = []Option{
	{Value: "concrete-pumping", Label: "Concrete Pumping"},
	{Value: "crane", Label: "Crane"},
	{Value: "transportation", Label: "Transportation"},
}

// PumpTypes are the pump/boom sizes in the fleet.
var PumpTypes = []Option{
	{Value: "line-pump", Label: "Line Pump"},
	{Value: "boom-28", Label: "Boom 28m"},
	{Value: "boom-36", Label: "Boom 36m"},
	{Value: "boom-42", Label: "Boom 42m"},
	{Value: "boom-52", Label: "Boom 52m"},
	{Value: "mixer-pump", Label: "Mixer Pump"},
}

// ConcreteTypes are the mix grades recorded on a certificate.
var ConcreteTypes = []Option{
	{Value: "b20", Label: "B20"},
	{Value: "b30", Label: "B30"},
	{Value: "b40", Label: "B40"},
	{Value: "b50", Label: "B50"},
	{Value: "self-compacting", Label: "Self-Compacting"},
}

// ElementTypes are the structural elements being poured.
var ElementTypes = []Option{
	{Value: "foundation", Label: "Foundation"},
	{Value: "slab", Label: "Slab"},
	{Value: "columns", Label: "Columns"},
	{Value: "walls", Label: "Walls"},
	{Value: "stairs", Label: "Stairs"},
	{Value: "other", Label: "Other"},
}

// CompanyProvides records who supplied the concrete.
var CompanyProvides = []Option{
	{Value: "customer", Label: "Customer supplies concrete"},
	{Value: "company", Label: "We supply concrete"},
}

// WorkTypes classify how the job was billed.
var WorkTypes = []Option{
	{Value: "regular", Label: "Regular"},
	{Value: "night", Label: "Night Shift"},
	{Value: "weekend", Label: "Weekend"},
	{Value: "holiday", Label: "Holiday"},
}

// Label returns the display label for value, or value itself when unknown.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

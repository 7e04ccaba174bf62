package draft

import (
	"errors"
	"testing"

	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCall_SetAndValue(t *testing.T) {
	call := NewServiceCall()
	assert.Equal(t, StatusPending, call.Status)

	fields := map[string]string{
		FieldDate:          "2026-10-14",
		FieldStartTime:     "07:30",
		FieldServiceType:   "concrete-pumping",
		FieldCustomer:      "Acme Builders",
		FieldProjectSite:   "Harbor Tower",
		FieldPumpType:      "boom-36",
		FieldQuantity:      "42",
		FieldVehicleNumber: "TRK-7",
		FieldOperator:      "op-1",
		FieldNotes:         "gate code 1234",
		FieldStatus:        StatusScheduled,
	}
	for f, v := range fields {
		require.NoError(t, call.Set(f, "  "+v+" "), f)
	}
	for f, v := range fields {
		assert.Equal(t, v, call.Value(f), f)
	}
}

func TestServiceCall_BoolField(t *testing.T) {
	call := NewServiceCall()
	assert.Equal(t, "", call.Value(FieldHourlyBooking))

	require.NoError(t, call.Set(FieldHourlyBooking, "yes"))
	assert.True(t, call.HourlyBooking)
	assert.Equal(t, "yes", call.Value(FieldHourlyBooking))

	require.NoError(t, call.Set(FieldHourlyBooking, "no"))
	assert.False(t, call.HourlyBooking)

	assert.Error(t, call.Set(FieldHourlyBooking, "maybe"))
}

func TestServiceCall_SetErrors(t *testing.T) {
	call := NewServiceCall()

	err := call.Set("color", "red")
	assert.True(t, errors.Is(err, ErrUnknownField))

	assert.Error(t, call.Set(FieldStatus, "lost"))
	assert.Equal(t, StatusPending, call.Status)
}

func TestCertificate_FallsBackToServiceCallFields(t *testing.T) {
	cert := NewCertificate()
	require.NoError(t, cert.Set(FieldCustomer, "Acme"))
	require.NoError(t, cert.Set(FieldConcreteType, "b30"))
	require.NoError(t, cert.Set(FieldMalkoTeam, "y"))
	require.NoError(t, cert.Set(FieldIncludeConcreteSupply, "true"))

	assert.Equal(t, "Acme", cert.Customer)
	assert.Equal(t, "b30", cert.Value(FieldConcreteType))
	assert.True(t, cert.MalkoTeam)
	assert.True(t, cert.IncludeConcreteSupply)
	assert.True(t, errors.Is(cert.Set("nope", "x"), ErrUnknownField))
}

func TestFromServiceCall(t *testing.T) {
	call := NewServiceCall()
	call.Customer = "Acme"
	call.Notes = "bring extra hose"

	cert := FromServiceCall("call-1", call)
	assert.Equal(t, "call-1", cert.ServiceCallID)
	assert.Equal(t, "Acme", cert.Customer)
	assert.Equal(t, "bring extra hose", cert.Notes)
	assert.Equal(t, StatusCompleted, cert.Status)

	// The source call is not shared.
	cert.Customer = "Other"
	assert.Equal(t, "Acme", call.Customer)
	assert.Equal(t, StatusPending, call.Status)
}

// Every field named by a rule table must be settable on the matching draft,
// otherwise the rule could never be satisfied.
func TestRuleFieldsExistOnDrafts(t *testing.T) {
	cases := []struct {
		name  string
		rules steps.Rules
		draft Editor
	}{
		{"service-call", steps.ServiceCallRules, NewServiceCall()},
		{"certificate", steps.CertificateRules, NewCertificate()},
	}
	for _, c := range cases {
		for sub, rules := range c.rules {
			for _, r := range rules {
				err := c.draft.Set(r.Field, "x")
				assert.NoError(t, err, "%s/%s: field %q", c.name, sub, r.Field)
				assert.Equal(t, "x", c.draft.Value(r.Field))
			}
		}
	}
}

func TestValidQuantity(t *testing.T) {
	assert.True(t, ValidQuantity("12.5"))
	assert.False(t, ValidQuantity("0"))
	assert.False(t, ValidQuantity("lots"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Crane", Label(ServiceTypes, "crane"))
	assert.Equal(t, "unknown", Label(ServiceTypes, "unknown"))
}

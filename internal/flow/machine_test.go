package flow

import (
	"errors"
	"testing"

	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fields is a map-backed Fields for tests.
type fields map[string]string

func (f fields) Value(name string) string { return f[name] }

// fullCertificate returns values for every certificate rule field.
func fullCertificate() fields {
	f := fields{}
	for _, rules := range steps.CertificateRules {
		for _, r := range rules {
			f[r.Field] = "x"
		}
	}
	return f
}

func newMachine(t *testing.T, tree steps.Tree, rules steps.Rules, f Fields, opts Options) *Machine {
	t.Helper()
	m, err := New(tree, rules, f, opts)
	require.NoError(t, err)
	return m
}

// placeAt walks a machine forward until it reaches sub, using valid fields.
func placeAt(t *testing.T, m *Machine, sub string) {
	t.Helper()
	for i := 0; m.Position().SubStep != sub; i++ {
		require.Less(t, i, m.tree.Count(), "substep %q not reached", sub)
		require.NoError(t, m.MoveToNext())
	}
}

func TestMoveToNext_BlocksOnEmptyRequiredField(t *testing.T) {
	trees := []struct {
		tree  steps.Tree
		rules steps.Rules
	}{
		{steps.ServiceCall, steps.ServiceCallRules},
		{steps.Certificate, steps.CertificateRules},
	}

	for _, tc := range trees {
		for _, main := range tc.tree.Steps {
			for _, sub := range main.Substeps {
				rules := tc.rules.For(sub)
				for _, rule := range rules {
					t.Run(tc.tree.Name+"/"+sub+"/"+rule.Field, func(t *testing.T) {
						f := fields{}
						for _, rs := range tc.rules {
							for _, r := range rs {
								f[r.Field] = "x"
							}
						}
						m := newMachine(t, tc.tree, tc.rules, f, Options{})
						placeAt(t, m, sub)

						f[rule.Field] = ""
						before := m.Position()

						err := m.MoveToNext()

						var verr *ValidationError
						require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
						assert.Equal(t, before, m.Position())
						assert.NotEmpty(t, m.Error(rule.Field))
						assert.Equal(t, rule.Message, verr.Fields[rule.Field])
						assert.True(t, m.Shaking())
					})
				}
			}
		}
	}
}

func TestMoveToNext_ClearsErrorAndAdvances(t *testing.T) {
	f := fullCertificate()
	m := newMachine(t, steps.Certificate, steps.CertificateRules, f, Options{})

	// Fail once on customer, then fix it.
	f["customer"] = ""
	require.Error(t, m.MoveToNext())
	require.NotEmpty(t, m.Error("customer"))

	f["customer"] = "Acme"
	require.NoError(t, m.MoveToNext())
	assert.Empty(t, m.Error("customer"))
	assert.Equal(t, Position{Step: steps.CertBasic, SubStep: "type"}, m.Position())

	// Last substep of a main step moves to the first substep of the next one.
	placeAt(t, m, "date")
	require.NoError(t, m.MoveToNext())
	assert.Equal(t, Position{Step: steps.CertService, SubStep: "pump"}, m.Position())
}

func TestMoveToPrev_NoOpAtStart(t *testing.T) {
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, fields{}, Options{})
	before := m.Position()

	assert.False(t, m.MoveToPrev())
	assert.Equal(t, before, m.Position())
	assert.Empty(t, m.Errors())
	assert.True(t, m.IsFirst())
}

func TestNextThenPrev_RoundTrips(t *testing.T) {
	for _, tc := range []struct {
		tree  steps.Tree
		rules steps.Rules
	}{
		{steps.ServiceCall, steps.ServiceCallRules},
		{steps.Certificate, steps.CertificateRules},
	} {
		f := fields{}
		for _, rs := range tc.rules {
			for _, r := range rs {
				f[r.Field] = "x"
			}
		}
		m := newMachine(t, tc.tree, tc.rules, f, Options{})
		for !m.IsLast() {
			from := m.Position()
			require.NoError(t, m.MoveToNext())
			to := m.Position()
			require.NotEqual(t, from, to)

			require.True(t, m.MoveToPrev())
			assert.Equal(t, from, m.Position(), "%s: prev from %s", tc.tree.Name, to)

			require.NoError(t, m.MoveToNext())
		}
	}
}

func TestInitialStep_AppliedOnceAtConstruction(t *testing.T) {
	opts := Options{InitialStep: steps.CertAdditions}
	m := newMachine(t, steps.Certificate, steps.CertificateRules, fields{}, opts)
	assert.Equal(t, Position{Step: steps.CertAdditions, SubStep: "waitingTime"}, m.Position())

	require.NoError(t, m.MoveToNext())
	require.True(t, m.MoveToPrev())
	require.True(t, m.MoveToPrev())

	// Changing the caller's options afterwards has no effect on the machine.
	opts.InitialStep = steps.CertPreview
	assert.Equal(t, Position{Step: steps.CertTimes, SubStep: "operator"}, m.Position())
}

func TestInitialStep_Unknown(t *testing.T) {
	_, err := New(steps.Certificate, steps.CertificateRules, fields{}, Options{InitialStep: "nowhere"})
	assert.True(t, errors.Is(err, ErrUnknownStep))
}

func TestAdditionsWalkToPreview(t *testing.T) {
	m := newMachine(t, steps.Certificate, steps.CertificateRules, fields{}, Options{InitialStep: steps.CertAdditions})
	additions := steps.Certificate.Substeps(steps.CertAdditions)

	for i := 1; i < len(additions); i++ {
		require.NoError(t, m.MoveToNext())
		assert.Equal(t, Position{Step: steps.CertAdditions, SubStep: additions[i]}, m.Position())
	}
	assert.Equal(t, "workType", m.Position().SubStep)

	require.NoError(t, m.MoveToNext())
	assert.Equal(t, Position{Step: steps.CertPreview, SubStep: "complete"}, m.Position())
	assert.True(t, m.IsLast())
}

func TestServiceTypeRequired(t *testing.T) {
	call := draft.NewServiceCall()
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, call, Options{})
	require.Equal(t, steps.CallType, m.Position().SubStep)

	err := m.MoveToNext()
	require.Error(t, err)
	assert.Equal(t, "Please select a service type", m.Errors()["serviceType"])
	assert.Equal(t, steps.CallType, m.Position().SubStep)
}

func TestCustomerRequiredRegardlessOfOtherFields(t *testing.T) {
	call := draft.NewServiceCall()
	call.ServiceType = "concrete-pumping"
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, call, Options{})
	require.NoError(t, m.MoveToNext())
	require.Equal(t, steps.CallCustomer, m.Position().SubStep)

	call.Customer = ""
	call.Operator = ""
	err := m.MoveToNext()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"customer": "Please select a customer"}, verr.Fields)
	assert.Equal(t, steps.CallCustomer, m.Position().SubStep)
}

func TestRelaxed_RecordsButDoesNotBlock(t *testing.T) {
	m := newMachine(t, steps.Certificate, steps.CertificateRules, fields{}, Options{Relaxed: true})

	require.NoError(t, m.MoveToNext())
	assert.Equal(t, "type", m.Position().SubStep)
	assert.Equal(t, "Please select a customer", m.Error("customer"))
	assert.False(t, m.Shaking())
}

func TestCompletion(t *testing.T) {
	calls := 0
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, fields{}, Options{
		InitialStep: steps.CallNotes,
		OnComplete:  func() error { calls++; return nil },
	})
	require.True(t, m.IsLast())

	require.NoError(t, m.MoveToNext())
	assert.Equal(t, 1, calls)
	assert.True(t, m.Completed())

	assert.ErrorIs(t, m.MoveToNext(), ErrCompleted)
	assert.False(t, m.MoveToPrev())
	assert.Equal(t, 1, calls)
}

func TestCompletionFailureStaysOnLastStep(t *testing.T) {
	boom := errors.New("backend unavailable")
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, fields{}, Options{
		InitialStep: steps.CallNotes,
		OnComplete:  func() error { return boom },
	})

	err := m.MoveToNext()
	assert.ErrorIs(t, err, boom)
	assert.False(t, m.Completed())
	assert.Equal(t, steps.CallNotes, m.Position().SubStep)
}

func TestClearShake(t *testing.T) {
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, fields{}, Options{})
	require.Error(t, m.MoveToNext())
	require.True(t, m.Shaking())

	m.ClearShake()
	assert.False(t, m.Shaking())
	// The error text stays until the field is fixed.
	assert.NotEmpty(t, m.Error("serviceType"))
}

func TestJump(t *testing.T) {
	m := newMachine(t, steps.Certificate, steps.CertificateRules, fields{}, Options{InitialStep: steps.CertTimes})

	assert.ErrorIs(t, m.Jump(steps.CertPreview), ErrForwardJump)
	assert.ErrorIs(t, m.Jump("nope"), ErrUnknownStep)

	require.NoError(t, m.Jump(steps.CertBasic))
	assert.Equal(t, Position{Step: steps.CertBasic, SubStep: "customer"}, m.Position())
}

func TestProgressAndRequired(t *testing.T) {
	m := newMachine(t, steps.ServiceCall, steps.ServiceCallRules, fields{}, Options{InitialStep: steps.CallSchedule})

	cur, total := m.Progress()
	assert.Equal(t, 4, cur)
	assert.Equal(t, 7, total)
	assert.Equal(t, []string{"date", "startTime"}, m.Required())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{SubStep: "schedule", Fields: map[string]string{
		"startTime": "Please enter a start time",
		"date":      "Please select a date",
	}}
	assert.Equal(t, "Please select a date; Please enter a start time", err.Error())
}

func TestNew_RejectsNilFields(t *testing.T) {
	_, err := New(steps.ServiceCall, steps.ServiceCallRules, nil, Options{})
	assert.Error(t, err)
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "notes", Position{Step: "notes", SubStep: "notes"}.String())
	assert.Equal(t, "additions/pipe", Position{Step: "additions", SubStep: "pipe"}.String())
}

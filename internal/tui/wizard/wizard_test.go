package wizard

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/mark3labs/dispatch/internal/tui"
	"github.com/mark3labs/dispatch/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCallWizard(t *testing.T, call *draft.ServiceCall, saver *testfixtures.MockSaver) *Model {
	t.Helper()
	m, err := New(Config{
		Title:     "New Service Call",
		Tree:      steps.ServiceCall,
		Rules:     steps.ServiceCallRules,
		Draft:     call,
		Customers: testfixtures.Customers(),
		Operators: testfixtures.Operators(),
		Save:      saver.Save,
	})
	require.NoError(t, err)
	m.Update(testfixtures.WindowSize())
	return m
}

// press feeds keys to the model and returns the last command.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(testfixtures.Key(k))
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, k := range testfixtures.Runes(s) {
		m.Update(k)
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWizard_EmptyRequiredFieldBlocks(t *testing.T) {
	m := newCallWizard(t, draft.NewServiceCall(), testfixtures.NewMockSaver())

	cmd := press(m, "enter")

	assert.NotNil(t, cmd)
	assert.Equal(t, steps.CallType, m.Machine().Position().SubStep)
	assert.Equal(t, "Please select a service type", m.Machine().Error(draft.FieldServiceType))
	assert.Equal(t, "Please select a service type", m.Toast())
	assert.True(t, m.Machine().Shaking())

	m.Update(clearShakeMsg{seq: m.shakeSeq})
	assert.False(t, m.Machine().Shaking())
}

func TestWizard_StaleShakeClearIgnored(t *testing.T) {
	m := newCallWizard(t, draft.NewServiceCall(), testfixtures.NewMockSaver())

	press(m, "enter")
	press(m, "enter")

	m.Update(clearShakeMsg{seq: 1})
	assert.True(t, m.Machine().Shaking(), "an older timer must not clear a newer shake")
	m.Update(clearShakeMsg{seq: 2})
	assert.False(t, m.Machine().Shaking())
}

func TestWizard_ChoiceSelectsAndAdvances(t *testing.T) {
	call := draft.NewServiceCall()
	m := newCallWizard(t, call, testfixtures.NewMockSaver())

	press(m, "down")
	assert.Equal(t, "concrete-pumping", call.ServiceType)
	press(m, "3")
	assert.Equal(t, "transportation", call.ServiceType)
	press(m, "up")
	assert.Equal(t, "crane", call.ServiceType)

	press(m, "enter")
	assert.Equal(t, steps.CallCustomer, m.Machine().Position().Step)
	assert.Empty(t, m.Machine().Error(draft.FieldServiceType))
}

func TestWizard_CustomerBlocksWhenEmpty(t *testing.T) {
	call := draft.NewServiceCall()
	call.ServiceType = "concrete-pumping"
	m := newCallWizard(t, call, testfixtures.NewMockSaver())

	press(m, "enter")
	require.Equal(t, steps.CallCustomer, m.Machine().Position().SubStep)

	press(m, "enter")
	assert.Equal(t, steps.CallCustomer, m.Machine().Position().SubStep)
	assert.Equal(t, "Please select a customer", m.Machine().Error(draft.FieldCustomer))

	press(m, "2", "enter")
	assert.Equal(t, "Northside Homes", call.Customer)
	assert.Equal(t, steps.CallSite, m.Machine().Position().SubStep)
}

func TestWizard_TypedTextAndFormatChecks(t *testing.T) {
	call := draft.NewServiceCall()
	call.ServiceType = "crane"
	call.Customer = "Acme Builders"
	m := newCallWizard(t, call, testfixtures.NewMockSaver())
	press(m, "enter", "enter")
	require.Equal(t, steps.CallSite, m.Machine().Position().SubStep)

	typeText(m, "North Yard")
	press(m, "enter")
	assert.Equal(t, "North Yard", call.ProjectSite)
	require.Equal(t, steps.CallSchedule, m.Machine().Position().SubStep)

	typeText(m, "tomorrow")
	press(m, "enter")
	assert.Equal(t, steps.CallSchedule, m.Machine().Position().SubStep)
	assert.Equal(t, "Date must look like 2026-03-02", m.Toast())
	assert.Equal(t, "Date must look like 2026-03-02", m.checkErrs[draft.FieldDate])
}

func TestWizard_PasteIsSanitized(t *testing.T) {
	call := draft.NewServiceCall()
	call.ServiceType = "crane"
	call.Customer = "Acme Builders"
	m := newCallWizard(t, call, testfixtures.NewMockSaver())
	press(m, "enter", "enter")
	require.Equal(t, steps.CallSite, m.Machine().Position().SubStep)

	m.Update(tea.PasteMsg{Content: "\x1b[1mNorth\r\nYard\x1b[0m  "})
	assert.Equal(t, "North Yard", call.ProjectSite)
}

func TestWizard_EscOnFirstStepCancels(t *testing.T) {
	m := newCallWizard(t, draft.NewServiceCall(), testfixtures.NewMockSaver())

	cmd := press(m, "esc")

	assert.True(t, m.Cancelled())
	assert.True(t, isQuit(cmd))
}

func TestWizard_EscGoesBack(t *testing.T) {
	m := newCallWizard(t, testfixtures.ServiceCall(), testfixtures.NewMockSaver())

	press(m, "enter", "enter")
	require.Equal(t, steps.CallSite, m.Machine().Position().SubStep)

	press(m, "esc")
	assert.Equal(t, steps.CallCustomer, m.Machine().Position().SubStep)
	assert.False(t, m.Cancelled())
}

func TestWizard_ButtonBarBack(t *testing.T) {
	m := newCallWizard(t, testfixtures.ServiceCall(), testfixtures.NewMockSaver())
	press(m, "enter")
	require.Equal(t, steps.CallCustomer, m.Machine().Position().SubStep)

	press(m, "tab")
	require.True(t, m.onButtons())
	press(m, "left", "enter")
	assert.Equal(t, steps.CallType, m.Machine().Position().SubStep)
}

func TestWizard_PgUpJumpsToPreviousSection(t *testing.T) {
	m := newCallWizard(t, testfixtures.ServiceCall(), testfixtures.NewMockSaver())
	press(m, "enter", "enter", "enter")
	require.Equal(t, steps.CallSchedule, m.Machine().Position().Step)

	press(m, "pgup")
	assert.Equal(t, steps.CallSite, m.Machine().Position().Step)
}

func TestWizard_CompletesAndSaves(t *testing.T) {
	saver := testfixtures.NewMockSaver()
	m := newCallWizard(t, testfixtures.ServiceCall(), saver)

	var cmd tea.Cmd
	for i := 0; i < len(steps.ServiceCall.Steps); i++ {
		cmd = press(m, "enter")
	}

	assert.Equal(t, 1, saver.SaveCalls())
	assert.True(t, m.Completed())
	assert.False(t, m.Saving())
	assert.True(t, isQuit(cmd))
}

func TestWizard_SaveFailureShowsToast(t *testing.T) {
	saver := testfixtures.NewMockSaver()
	saver.Err = errors.New("backend unavailable")
	m := newCallWizard(t, testfixtures.ServiceCall(), saver)

	for i := 0; i < len(steps.ServiceCall.Steps); i++ {
		press(m, "enter")
	}

	assert.False(t, m.Completed())
	assert.False(t, m.Saving(), "saving flag is cleared after a failure")
	assert.True(t, m.Machine().IsLast())
	assert.Contains(t, m.Toast(), "backend unavailable")

	// No automatic retry; a second confirm tries again.
	saver.Err = nil
	press(m, "enter")
	assert.Equal(t, 2, saver.SaveCalls())
	assert.True(t, m.Completed())
}

func TestWizard_ToastDismiss(t *testing.T) {
	m := newCallWizard(t, draft.NewServiceCall(), testfixtures.NewMockSaver())
	press(m, "enter")
	require.NotEmpty(t, m.Toast())

	m.Update(tui.ToastDismissMsg{Seq: 1})
	assert.Empty(t, m.Toast())
}

func TestWizard_CertificateConversion(t *testing.T) {
	saver := testfixtures.NewMockSaver()
	cert := testfixtures.Certificate()
	previews := 0
	m, err := New(Config{
		Title:       "Delivery Certificate",
		Tree:        steps.Certificate,
		Rules:       steps.CertificateRules,
		Draft:       cert,
		InitialStep: steps.CertAdditions,
		Relaxed:     true,
		Preview: func() string {
			previews++
			return "# Delivery Certificate\n\nAcme Builders"
		},
		Save: saver.Save,
	})
	require.NoError(t, err)
	require.Equal(t, "waitingTime", m.Machine().Position().SubStep)

	press(m, "tab", "tab", "enter") // focus wraps back to the input
	for _, want := range []string{"transfers", "pipe"} {
		assert.Equal(t, want, m.Machine().Position().SubStep)
		press(m, "enter")
	}

	require.Equal(t, "malkoTeam", m.Machine().Position().SubStep)
	press(m, "space")
	assert.True(t, cert.MalkoTeam)
	press(m, "enter")

	for _, want := range []string{"concreteSupply", "notes", "workType"} {
		assert.Equal(t, want, m.Machine().Position().SubStep)
		press(m, "enter")
	}
	assert.Equal(t, steps.CertPreview, m.Machine().Position().Step)
	assert.Equal(t, 1, previews)

	press(m, "enter")
	assert.True(t, m.Completed())
	assert.Equal(t, 1, saver.SaveCalls())
}

func TestWizard_CarriedCustomerSurvivesChoice(t *testing.T) {
	call := testfixtures.ServiceCall()
	call.Customer = "Walk-in Customer"
	m := newCallWizard(t, call, testfixtures.NewMockSaver())

	press(m, "enter", "enter")
	assert.Equal(t, "Walk-in Customer", call.Customer)
	assert.Equal(t, steps.CallSite, m.Machine().Position().SubStep)
}

func TestWizard_Render(t *testing.T) {
	m := newCallWizard(t, draft.NewServiceCall(), testfixtures.NewMockSaver())
	press(m, "enter")

	screen := testfixtures.Screen(m.render())
	assert.Contains(t, screen, "New Service Call - Step 1 of 7")
	assert.Contains(t, screen, "Service Type")
	assert.Contains(t, screen, "Concrete Pumping")
	assert.Contains(t, screen, "Please select a service type")
	assert.Contains(t, screen, "Cancel")
	assert.Contains(t, screen, "Next")

	press(m, "down", "enter")
	screen = testfixtures.Screen(m.render())
	assert.Contains(t, screen, "Step 2 of 7")
	assert.Contains(t, screen, "Back")
	assert.False(t, strings.Contains(screen, "Finish"))
}

func TestFieldsFor(t *testing.T) {
	for _, tree := range []steps.Tree{steps.ServiceCall, steps.Certificate} {
		for _, main := range tree.Steps {
			for _, sub := range main.Substeps {
				fields := FieldsFor(tree.Name, sub)
				require.NotEmpty(t, fields, "%s/%s", tree.Name, sub)
				assert.NotEqual(t, sub, fields[0].Label, "%s/%s uses the fallback layout", tree.Name, sub)
			}
		}
	}

	// Every required field has an input on its substep.
	for sub, rules := range steps.CertificateRules {
		names := map[string]bool{}
		for _, f := range FieldsFor(steps.Certificate.Name, sub) {
			names[f.Name] = true
		}
		for _, r := range rules {
			assert.True(t, names[r.Field], "%s requires %s", sub, r.Field)
		}
	}
}

package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTreesAreValid(t *testing.T) {
	for _, tree := range []Tree{ServiceCall, Certificate} {
		t.Run(tree.Name, func(t *testing.T) {
			require.NoError(t, tree.Validate())
		})
	}
}

func TestServiceCallTreeIsFlat(t *testing.T) {
	assert.True(t, ServiceCall.Flat())
	assert.Len(t, ServiceCall.Steps, 7)
	for _, m := range ServiceCall.Steps {
		assert.Equal(t, []string{m.ID}, m.Substeps)
	}
}

func TestCertificateTreeShape(t *testing.T) {
	assert.False(t, Certificate.Flat())
	assert.Len(t, Certificate.Steps, 5)

	assert.Equal(t,
		[]string{"waitingTime", "transfers", "pipe", "malkoTeam", "concreteSupply", "notes", "workType"},
		Certificate.Substeps(CertAdditions))
	assert.Equal(t, []string{"complete"}, Certificate.Substeps(CertPreview))

	main, sub := Certificate.First()
	assert.Equal(t, CertBasic, main)
	assert.Equal(t, "customer", sub)
}

func TestRulesReferenceExistingSubsteps(t *testing.T) {
	cases := []struct {
		tree  Tree
		rules Rules
	}{
		{ServiceCall, ServiceCallRules},
		{Certificate, CertificateRules},
	}
	for _, c := range cases {
		known := map[string]bool{}
		for _, m := range c.tree.Steps {
			for _, s := range m.Substeps {
				known[s] = true
			}
		}
		for sub, rules := range c.rules {
			assert.True(t, known[sub], "%s: rule for unknown substep %q", c.tree.Name, sub)
			for _, r := range rules {
				assert.NotEmpty(t, r.Message, "%s/%s: empty message", c.tree.Name, sub)
			}
		}
	}
}

func TestAdditionsHaveNoRules(t *testing.T) {
	for _, sub := range Certificate.Substeps(CertAdditions) {
		assert.Empty(t, CertificateRules.For(sub), "substep %q", sub)
	}
}

func TestValidateRejectsBadTrees(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
		want string
	}{
		{"empty", Tree{}, "no steps"},
		{"no substeps", Tree{Steps: []Main{{ID: "a"}}}, "no substeps"},
		{"duplicate main", Tree{Steps: []Main{
			{ID: "a", Substeps: []string{"x"}},
			{ID: "a", Substeps: []string{"y"}},
		}}, "duplicate main step"},
		{"duplicate substep", Tree{Steps: []Main{
			{ID: "a", Substeps: []string{"x"}},
			{ID: "b", Substeps: []string{"x"}},
		}}, "appears in both"},
		{"blank substep", Tree{Steps: []Main{{ID: "a", Substeps: []string{""}}}}, "empty substep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tree.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOrdinalAndCount(t *testing.T) {
	assert.Equal(t, 21, Certificate.Count())
	assert.Equal(t, 0, Certificate.Ordinal(CertBasic, "customer"))
	assert.Equal(t, 13, Certificate.Ordinal(CertAdditions, "waitingTime"))
	assert.Equal(t, 20, Certificate.Ordinal(CertPreview, "complete"))
	assert.Equal(t, -1, Certificate.Ordinal(CertPreview, "customer"))
	assert.Equal(t, -1, Certificate.IndexOf("missing"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Please select a service type", Message("serviceType"))
	assert.Equal(t, "This field is required", Message("somethingElse"))
}

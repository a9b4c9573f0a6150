package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fraud-dictionary/internal/dataset"
)

func TestClassify(t *testing.T) {
	p := NewPartitioner()

	tests := []struct {
		name     string
		typ      dataset.DeclaredType
		expected Role
	}{
		{"age_of_person", dataset.Float, RoleNumeric},
		{"account_age", dataset.Text, RoleNumeric},
		{"survival_days", dataset.Integer, RoleNumeric},
		{"profile_id", dataset.Integer, RoleIdentifier},
		{"USER_ID", dataset.Integer, RoleIdentifier},
		{"valid_score", dataset.Float, RoleIdentifier},
		{"source_account_number", dataset.Text, RoleIdentifier},
		{"account_status", dataset.Text, RoleCategorical},
		{"is_fraud_flag", dataset.Integer, RoleCategorical},
		{"card_type", dataset.Text, RoleCategorical},
		{"remarks", dataset.Text, RoleCategorical},
		{"last_seen", dataset.Datetime, RoleCategorical},
		{"onboarded_date", dataset.Integer, RoleCategorical},
		{"kiosk_code", dataset.Float, RoleCategorical},
		{"txn_amt_wk1", dataset.Float, RoleNumeric},
		{"txn_occurrence_count", dataset.Integer, RoleNumeric},
		{"is_active", dataset.Other, RoleCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Classify(dataset.ColumnDescriptor{Name: tt.name, Type: tt.typ})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPartitionIsDisjointAndOrdered(t *testing.T) {
	schema := []dataset.ColumnDescriptor{
		{Name: "txn_amt_wk2", Type: dataset.Float},
		{Name: "profile_id", Type: dataset.Integer},
		{Name: "account_status", Type: dataset.Text},
		{Name: "txn_amt_wk1", Type: dataset.Float},
		{Name: "username", Type: dataset.Text},
		{Name: "date_tagged", Type: dataset.Datetime},
		{Name: "", Type: dataset.Other},
		{Name: "💳", Type: dataset.Integer},
	}

	part := NewPartitioner().Partition(schema)

	assert.Equal(t, []string{"txn_amt_wk2", "txn_amt_wk1", "💳"}, part.Numeric)
	assert.Equal(t, []string{"profile_id", "username"}, part.Identifier)
	assert.Equal(t, []string{"account_status", "date_tagged", ""}, part.Categorical)

	seen := map[string]int{}
	for _, group := range [][]string{part.Numeric, part.Categorical, part.Identifier} {
		for _, name := range group {
			seen[name]++
		}
	}
	assert.Len(t, seen, len(schema))
	for name, n := range seen {
		assert.Equal(t, 1, n, name)
	}
}

func TestPartitionEmpty(t *testing.T) {
	part := NewPartitioner().Partition(nil)
	assert.Empty(t, part.Numeric)
	assert.Empty(t, part.Categorical)
	assert.Empty(t, part.Identifier)
}

func TestRoleText(t *testing.T) {
	b, err := RoleIdentifier.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "identifier", string(b))
	assert.Equal(t, "numeric", RoleNumeric.String())
	assert.Equal(t, "categorical", RoleCategorical.String())
}

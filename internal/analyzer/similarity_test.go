package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name1    string
		name2    string
		expected float64
		minScore float64
	}{
		{"txn_amt_wk1", "txn_amt_wk1", 1.0, 1.0},
		{"UserID", "userid", 1.0, 1.0},
		{"profile", "profile_id", 0.8, 0.8},
		{"profle_id", "profile_id", 0, 0.85},
		{"abc", "xyz", 0, 0},
		{"", "", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name1+"_"+tt.name2, func(t *testing.T) {
			score := NameSimilarity(tt.name1, tt.name2)
			if tt.expected > 0 {
				assert.Equal(t, tt.expected, score)
			} else {
				assert.GreaterOrEqual(t, score, tt.minScore)
			}
		})
	}
	assert.Equal(t, 0.0, NameSimilarity("abc", "xyz"))
}

func TestSuggestColumn(t *testing.T) {
	candidates := []string{"account_status", "profile_id", "txn_amt_wk1"}

	got, ok := SuggestColumn("profle_id", candidates)
	assert.True(t, ok)
	assert.Equal(t, "profile_id", got)

	_, ok = SuggestColumn("zzz", candidates)
	assert.False(t, ok)

	_, ok = SuggestColumn("profile_id", nil)
	assert.False(t, ok)
}

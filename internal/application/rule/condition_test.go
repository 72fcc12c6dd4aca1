package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCondition(t *testing.T) {
	params := map[string]interface{}{
		"amount":      30000.0,
		"currency":    "USD",
		"vendor_risk": "HIGH",
	}

	tests := []struct {
		name      string
		condition string
		want      bool
		wantErr   bool
	}{
		{"empty condition is true", "", true, false},
		{"whitespace condition is true", "   ", true, false},
		{"literal true", "true", true, false},
		{"literal false", "FALSE", false, false},
		{"amount comparison", "amount > 25000", true, false},
		{"string equality", "vendor_risk == 'HIGH'", true, false},
		{"compound expression", "amount > 25000 && currency == 'USD'", true, false},
		{"false comparison", "amount < 1000", false, false},
		{"syntax error", "amount >", false, true},
		{"non-boolean result", "amount + 1", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateCondition(tt.condition, params)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

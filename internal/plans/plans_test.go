package plans

import (
	"testing"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Lookup(t *testing.T) {
	table := Default()

	tests := []struct {
		name        string
		amount      string
		expected    string
		expectedErr error
	}{
		{name: "Lower bound", amount: "3", expected: "Bronze"},
		{name: "Upper bound", amount: "10", expected: "Bronze"},
		{name: "Gold", amount: "100", expected: "Gold"},
		{name: "Elite", amount: "50000", expected: "Elite"},
		{name: "Gap between plans", amount: "10.5", expectedErr: domain.ErrInvalidAmount},
		{name: "Below all plans", amount: "1", expectedErr: domain.ErrInvalidAmount},
		{name: "Above all plans", amount: "50001", expectedErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := table.Lookup(decimal.RequireFromString(tt.amount))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Name)
		})
	}
}

func TestRegistry_Update(t *testing.T) {
	reg := NewRegistry(Default())
	before := reg.Current()

	percent := decimal.NewFromInt(12)
	days := 4
	next, err := reg.Update("Gold", Patch{ReturnsPercent: &percent, DurationDays: &days})
	require.NoError(t, err)

	assert.Equal(t, 2, next.Version)
	assert.Same(t, next, reg.Current())

	gold, err := next.Lookup(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "12", gold.ReturnsPercent.String())
	assert.Equal(t, 4, gold.DurationDays)

	old, err := before.Lookup(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "10", old.ReturnsPercent.String())
	assert.Equal(t, 1, before.Version)
}

func TestRegistry_UpdateErrors(t *testing.T) {
	reg := NewRegistry(Default())

	_, err := reg.Update("Mythril", Patch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	days := 0
	_, err = reg.Update("Gold", Patch{DurationDays: &days})
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
	assert.Equal(t, 1, reg.Current().Version)
}

package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitCalculatorRejectsBadPercentage(t *testing.T) {
	_, err := NewSplitCalculator(-0.1)
	assert.Error(t, err)

	_, err = NewSplitCalculator(1.5)
	assert.Error(t, err)

	_, err = NewSplitCalculator(0.05)
	assert.NoError(t, err)
}

func TestSplitPartsSumToTotal(t *testing.T) {
	calc, err := NewSplitCalculator(0.05)
	require.NoError(t, err)

	for _, total := range []float64{100, 99.99, 10.01, 0.01, 33.33, 12345.67} {
		split := calc.Split(total)
		assert.InDelta(t, split.Total, split.AdminFee+split.SellerAmount, 1e-9, "total %v", total)
	}
}

func TestSplitRoundsFeeToTwoDecimals(t *testing.T) {
	calc, err := NewSplitCalculator(0.05)
	require.NoError(t, err)

	split := calc.Split(99.99)
	// 5% of 99.99 is 4.9995, rounded to 5.00; seller gets the remainder.
	assert.Equal(t, 5.0, split.AdminFee)
	assert.Equal(t, 94.99, split.SellerAmount)
	assert.Equal(t, 99.99, split.Total)
}

func TestSplitZeroPercentage(t *testing.T) {
	calc, err := NewSplitCalculator(0)
	require.NoError(t, err)

	split := calc.Split(50)
	assert.Equal(t, 0.0, split.AdminFee)
	assert.Equal(t, 50.0, split.SellerAmount)
}

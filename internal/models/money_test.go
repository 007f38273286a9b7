package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	testCases := []struct {
		name     string
		amount   float32
		expected string
	}{
		{
			name:     "thousands separator and decimal comma",
			amount:   1500.50,
			expected: "R$ 1.500,50",
		},
		{
			name:     "no thousands",
			amount:   899.90,
			expected: "R$ 899,90",
		},
		{
			name:     "round value keeps two digits",
			amount:   200,
			expected: "R$ 200,00",
		},
		{
			name:     "zero",
			amount:   0,
			expected: "R$ 0,00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatBRL(tc.amount))
		})
	}
}

func TestProcessingStatus_Terminal(t *testing.T) {
	assert.False(t, PendingStatus.Terminal())
	assert.True(t, ApprovedStatus.Terminal())
	assert.True(t, RejectedStatus.Terminal())
	assert.True(t, TimeoutStatus.Terminal())
}

func TestProcessingRecord_AmountConversion(t *testing.T) {
	record := ProcessingRecord{}
	record.SetAmountAsFloat(150050)
	assert.Equal(t, float32(1500.50), record.Amount)
	assert.Equal(t, int64(150050), record.AmountAsCents())
}

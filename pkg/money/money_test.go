package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestServiceFeeAndTotal(t *testing.T) {
	subtotal := decimal.NewFromInt(250)
	fee := ServiceFee(subtotal)
	assert.True(t, fee.Equal(decimal.RequireFromString("25.00")), "fee = %s", fee)

	total := Total(subtotal, fee)
	assert.True(t, total.Equal(decimal.RequireFromString("275.00")), "total = %s", total)
}

func TestServiceFeeRounding(t *testing.T) {
	cases := []struct {
		subtotal string
		fee      string
	}{
		{"101.25", "10.13"}, // 10.125 rounds up
		{"0.04", "0.00"},
		{"0.05", "0.01"},
		{"999.99", "100.00"},
	}
	for _, tc := range cases {
		got := ServiceFee(decimal.RequireFromString(tc.subtotal))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.fee)),
			"ServiceFee(%s) = %s, want %s", tc.subtotal, got, tc.fee)
	}
}

func TestLineSubtotal(t *testing.T) {
	got := LineSubtotal(decimal.RequireFromString("49.95"), 3)
	assert.True(t, got.Equal(decimal.RequireFromString("149.85")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₱1,250.00", Format(decimal.NewFromInt(1250)))
	assert.Equal(t, "₱0.50", Format(decimal.RequireFromString("0.5")))
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{in: 312.5, want: 312.5},
		{in: 100.004, want: 100},
		{in: 100.006, want: 100.01},
		{in: -42.127, want: -42.13},
		{in: 0, want: 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundCents(tc.in), "RoundCents(%v)", tc.in)
	}
}

func TestNewMoney_DefaultCurrency(t *testing.T) {
	m := NewMoney(19.999, "")
	assert.Equal(t, DefaultCurrency, m.Currency)
	assert.Equal(t, "20", m.Amount.String())
	assert.Equal(t, 20.0, m.Float64())
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	s := &Store{}

	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{1050, "usd", "$10.50"},
		{0, "usd", "$0.00"},
		{5, "usd", "$0.05"},
		{123456789, "usd", "$1,234,567.89"},
		{2500, "eur", "€25.00"},
		{999, "gbp", "£9.99"},
		{1050, "USD", "$10.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.FormatPrice(tt.amount, tt.currency))
	}
}

func TestFormatPrice_UnknownCurrencyFallsBack(t *testing.T) {
	s := &Store{}
	assert.Equal(t, "10.50 CHF", s.FormatPrice(1050, "chf"))
}

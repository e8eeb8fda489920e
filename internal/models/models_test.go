package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderAmount(t *testing.T) {
	tests := []struct {
		total    int64
		currency string
		want     string
	}{
		{1234, "usd", "12.34 USD"},
		{500, "eur", "5.00 EUR"},
		{7, "gbp", "0.07 GBP"},
		{-250, "usd", "-2.50 USD"},
		{990, "", "990"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Order{AmountTotal: tt.total, Currency: tt.currency}.Amount())
	}
}

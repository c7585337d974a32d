package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney_UsesBankersRounding(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"half rounds to even down", "2.345", "PKR", "2.34 PKR"},
		{"half rounds to even up", "2.355", "PKR", "2.36 PKR"},
		{"whole amount padded", "14000", "PKR", "14000.00 PKR"},
		{"negative amount", "-4100.5", "USD", "-4100.50 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

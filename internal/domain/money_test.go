package domain

import "testing"

func TestMoneySameCurrency(t *testing.T) {
	tests := []struct {
		name string
		a, b Money
		want bool
	}{
		{"equal codes", Money{100, "EUR"}, Money{200, "EUR"}, true},
		{"different codes", Money{100, "EUR"}, Money{100, "USD"}, false},
		{"empty left is compatible", Money{}, Money{100, "EUR"}, true},
		{"empty right is compatible", Money{100, "EUR"}, Money{}, true},
		{"both empty", Money{}, Money{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameCurrency(tt.b); got != tt.want {
				t.Errorf("SameCurrency(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.SameCurrency(tt.a); got != tt.want {
				t.Errorf("SameCurrency(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestMoneyIsZero(t *testing.T) {
	if !(Money{}).IsZero() {
		t.Error("zero value must report zero")
	}
	if !(Money{Currency: "EUR"}).IsZero() {
		t.Error("zero amount with a currency code still reports zero")
	}
	if (Money{Amount: 1, Currency: "EUR"}).IsZero() {
		t.Error("nonzero amount must not report zero")
	}
}

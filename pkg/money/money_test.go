package money

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float32
		want   string
	}{
		{amount: 0, want: "0.00"},
		{amount: 110, want: "110.00"},
		{amount: 99.999, want: "100.00"},
		{amount: 55.555, want: "55.56"},
	}

	for _, tt := range tests {
		if got := Format(tt.amount); got != tt.want {
			t.Fatalf("Format(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatWithCurrency(t *testing.T) {
	if got := FormatWithCurrency(220, "₽"); got != "220.00 ₽" {
		t.Fatalf("unexpected formatting: %q", got)
	}
	if got := FormatWithCurrency(220, ""); got != "220.00" {
		t.Fatalf("empty symbol should fall back to plain format: %q", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.005); got != 1.01 {
		t.Fatalf("expected half-up rounding, got %v", got)
	}
}
